package staffing

import (
	"github.com/phongzhu/e-elyon/pkg/db"
)

// MemberProfile is the skills/availability summary of one member within one ministry.
// It is recomputed from approved answers every time it is needed.
type MemberProfile struct {
	MinistryID   string                  `json:"ministryId"`
	MemberID     string                  `json:"memberId"`
	Skills       []string                `json:"skills"`
	Availability *AvailabilityDescriptor `json:"availability"`
}

// ProfileKey identifies a profile by ministry and member
type ProfileKey struct {
	MinistryID string
	MemberID   string
}

// AssembleProfiles folds questionnaire answers into one profile per (ministry, member).
// Every requested pair gets a profile; pairs without approved answers stay empty.
// Only answers to active requirements of the application's own ministry are used.
func AssembleProfiles(
	ministryIDs, memberIDs []string,
	requirements []db.Requirement,
	applications []db.Application,
	answers []db.Answer,
) map[ProfileKey]*MemberProfile {
	profiles := make(map[ProfileKey]*MemberProfile, len(ministryIDs)*len(memberIDs))
	seenSkills := make(map[ProfileKey]map[string]bool)

	for _, ministryID := range ministryIDs {
		for _, memberID := range memberIDs {
			key := ProfileKey{MinistryID: ministryID, MemberID: memberID}
			profiles[key] = &MemberProfile{
				MinistryID: ministryID,
				MemberID:   memberID,
				Skills:     []string{},
			}
			seenSkills[key] = make(map[string]bool)
		}
	}

	requirementsByID := make(map[string]db.Requirement, len(requirements))
	for _, r := range requirements {
		if r.IsActive {
			requirementsByID[r.ID] = r
		}
	}

	applicationsByID := make(map[string]db.Application, len(applications))
	for _, a := range applications {
		applicationsByID[a.ID] = a
	}

	for _, answer := range answers {
		application, ok := applicationsByID[answer.ApplicationID]
		if !ok {
			continue
		}
		requirement, ok := requirementsByID[answer.RequirementID]
		if !ok || requirement.MinistryID != application.MinistryID {
			continue
		}

		key := ProfileKey{MinistryID: application.MinistryID, MemberID: application.ApplicantID}
		profile, ok := profiles[key]
		if !ok {
			continue
		}

		parsed := ParseAnswer(answer.Raw)

		if IsAvailabilityRequirement(requirement.Title, requirement.Type) {
			if availability := ExtractAvailability(parsed); availability != nil {
				profile.Availability = availability
			}
			continue
		}

		for _, skill := range ExtractSkills(parsed) {
			if seenSkills[key][skill] {
				continue
			}
			seenSkills[key][skill] = true
			profile.Skills = append(profile.Skills, skill)
		}
	}

	return profiles
}

// SkillSet returns the profile's skills as a lookup set
func (p *MemberProfile) SkillSet() map[string]bool {
	set := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		set[s] = true
	}
	return set
}
