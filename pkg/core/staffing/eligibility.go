package staffing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	needCount     = regexp.MustCompile(`(?i)\bneed\s*\d+`)
)

// TaskWindow is the scheduled time of a task
type TaskWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResult explains whether a member can attend a task
type AvailabilityResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

// EligibilityResult annotates a candidate for a role slot. It is advisory:
// only an availability failure prevents selection.
type EligibilityResult struct {
	SkillMatch   bool               `json:"skillMatch"`
	Availability AvailabilityResult `json:"availability"`
}

// Recommended reports whether the member both matches the role and can attend
func (r EligibilityResult) Recommended() bool {
	return r.SkillMatch && r.Availability.OK
}

// Selectable reports whether the candidate may be ticked in the staffing UI.
// Skill self-reporting is not trusted enough to block selection; scheduling conflicts are.
func (r EligibilityResult) Selectable() bool {
	return r.Availability.OK
}

// Evaluator classifies candidates against role slots
type Evaluator struct {
	synonyms SynonymTable
	location *time.Location
}

// NewEvaluator creates an Evaluator. Task times are converted to location before
// their weekday and time of day are compared with member availability; nil keeps
// each time in its own location.
func NewEvaluator(synonyms SynonymTable, location *time.Location) *Evaluator {
	return &Evaluator{
		synonyms: synonyms,
		location: location,
	}
}

// Evaluate annotates a member profile for a role within a task window
func (e *Evaluator) Evaluate(roleName string, profile *MemberProfile, window TaskWindow) EligibilityResult {
	var skills []string
	if profile != nil {
		skills = profile.Skills
	}

	return EligibilityResult{
		SkillMatch:   e.RoleMatchesSkills(roleName, skills),
		Availability: e.MemberAvailableForTask(profile, window.Start, window.End),
	}
}

// RoleMatchesSkills reports whether any of the skills satisfies the role.
// An empty role is unconstrained and matches everything.
func (e *Evaluator) RoleMatchesSkills(roleName string, skills []string) bool {
	role := Normalize(stripRoleDecorations(roleName))
	roleTokens := strings.Fields(role)
	if len(roleTokens) == 0 {
		return true
	}

	expanded := e.synonyms.Expand(role)

	skillSet := make(map[string]bool, len(skills))
	normalizedSkills := make([]string, 0, len(skills))
	for _, s := range skills {
		token := Normalize(s)
		if token == "" || skillSet[token] {
			continue
		}
		skillSet[token] = true
		normalizedSkills = append(normalizedSkills, token)
	}

	for _, candidate := range expanded {
		if skillSet[candidate] {
			return true
		}
	}

	for _, skill := range normalizedSkills {
		for _, candidate := range expanded {
			if strings.Contains(candidate, skill) || strings.Contains(skill, candidate) {
				return true
			}
		}
	}

	required := min(2, len(roleTokens))
	roleTokenSet := make(map[string]bool, len(roleTokens))
	for _, t := range roleTokens {
		roleTokenSet[t] = true
	}
	for _, skill := range normalizedSkills {
		shared := 0
		counted := make(map[string]bool)
		for _, t := range strings.Fields(skill) {
			if roleTokenSet[t] && !counted[t] {
				counted[t] = true
				shared++
			}
		}
		if shared >= required {
			return true
		}
	}

	return false
}

// MemberAvailableForTask checks the member's reported days and time-of-day notes
// against the task start. Missing availability data never blocks a member.
func (e *Evaluator) MemberAvailableForTask(profile *MemberProfile, start, end time.Time) AvailabilityResult {
	if profile == nil || profile.Availability == nil {
		return AvailabilityResult{OK: true, Reason: "No availability restrictions"}
	}
	if start.IsZero() {
		return AvailabilityResult{OK: true, Reason: "Task has no start time"}
	}

	if e.location != nil {
		start = start.In(e.location)
	}
	availability := profile.Availability

	if len(availability.Days) > 0 {
		weekday := start.Weekday().String()
		if !containsWeekday(availability.Days, start.Weekday()) {
			return AvailabilityResult{OK: false, Reason: fmt.Sprintf("Not available on %s", weekday)}
		}
	}

	if restriction, ok := singleTimeBucket(availability.Notes); ok {
		if bucket := timeBucket(start); bucket != restriction {
			return AvailabilityResult{OK: false, Reason: fmt.Sprintf("%s only", titleCase(restriction))}
		}
	}

	return AvailabilityResult{OK: true, Reason: "Matches availability"}
}

// stripRoleDecorations removes UI hints such as "(Need 2)" from a role name
func stripRoleDecorations(roleName string) string {
	stripped := parenthesized.ReplaceAllString(roleName, " ")
	return needCount.ReplaceAllString(stripped, " ")
}

// containsWeekday matches full names and common abbreviations ("Sun", "Tues")
func containsWeekday(days []string, weekday time.Weekday) bool {
	full := strings.ToLower(weekday.String())
	for _, d := range days {
		day := Normalize(d)
		if day == "" {
			continue
		}
		if day == full || (len(day) >= 3 && strings.HasPrefix(full, day)) {
			return true
		}
	}
	return false
}

var timeBuckets = []string{"morning", "afternoon", "evening"}

// singleTimeBucket returns the bucket named in notes when exactly one is named
func singleTimeBucket(notes string) (string, bool) {
	lowered := strings.ToLower(notes)

	named := ""
	count := 0
	for _, bucket := range timeBuckets {
		if strings.Contains(lowered, bucket) {
			named = bucket
			count++
		}
	}
	return named, count == 1
}

func timeBucket(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
