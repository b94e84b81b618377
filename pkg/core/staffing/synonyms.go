package staffing

import "sort"

// SynonymTable maps a normalized role name to the skill phrases that satisfy it.
// Lookups work in both directions: a role that appears as a synonym of another
// entry expands to that entry's whole group. The table is immutable once built.
type SynonymTable struct {
	groups map[string][]string
}

// DefaultSynonyms returns the built-in role vocabulary
func DefaultSynonyms() SynonymTable {
	return NewSynonymTable(map[string][]string{
		"drummer":         {"drums", "drummer", "percussion"},
		"sound tech":      {"sound technician", "audio", "audio tech", "sound", "sound system"},
		"guitarist":       {"guitar", "guitarist", "electric guitar", "acoustic guitar"},
		"bassist":         {"bass", "bass guitar", "bassist"},
		"singer":          {"singing", "singer", "vocals", "vocalist"},
		"keyboardist":     {"keyboard", "keys", "piano", "pianist", "keyboardist"},
		"camera operator": {"camera", "camera operator", "videography", "video"},
		"media":           {"media", "multimedia", "projection", "slides", "livestream", "live streaming"},
	})
}

// NewSynonymTable builds a table from role -> synonyms. Keys and values are normalized.
func NewSynonymTable(entries map[string][]string) SynonymTable {
	groups := make(map[string][]string, len(entries))
	for role, synonyms := range entries {
		key := Normalize(role)
		if key == "" {
			continue
		}
		groups[key] = normalizeUnique(append([]string{key}, synonyms...))
	}
	return SynonymTable{groups: groups}
}

// Merge returns a new table where entries in overrides replace or extend the receiver's
func (t SynonymTable) Merge(overrides map[string][]string) SynonymTable {
	merged := make(map[string][]string, len(t.groups)+len(overrides))
	for role, synonyms := range t.groups {
		merged[role] = synonyms
	}
	for role, synonyms := range NewSynonymTable(overrides).groups {
		merged[role] = synonyms
	}
	return SynonymTable{groups: merged}
}

// Expand returns the normalized role plus every synonym associated with it
func (t SynonymTable) Expand(normalizedRole string) []string {
	if normalizedRole == "" {
		return nil
	}

	expanded := []string{normalizedRole}
	seen := map[string]bool{normalizedRole: true}
	add := func(values []string) {
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				expanded = append(expanded, v)
			}
		}
	}

	if group, ok := t.groups[normalizedRole]; ok {
		add(group)
	}

	// Reverse lookup, in key order so expansion is deterministic
	roles := make([]string, 0, len(t.groups))
	for role := range t.groups {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if role == normalizedRole {
			continue
		}
		for _, synonym := range t.groups[role] {
			if synonym == normalizedRole {
				add(t.groups[role])
				break
			}
		}
	}

	return expanded
}

// Len returns the number of roles in the table
func (t SynonymTable) Len() int {
	return len(t.groups)
}
