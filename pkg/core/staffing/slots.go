package staffing

import (
	"strings"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// SlotDraft is a role slot as submitted by the task editor
type SlotDraft struct {
	RoleName    string `json:"roleName"`
	QtyRequired int    `json:"qtyRequired"`
}

// CleanSlotDrafts trims role names, drops blank rows and clamps quantities to at least 1.
// A task must keep at least one role, so an empty result is rejected.
func CleanSlotDrafts(drafts []SlotDraft) ([]SlotDraft, error) {
	cleaned := make([]SlotDraft, 0, len(drafts))
	for _, d := range drafts {
		name := strings.TrimSpace(d.RoleName)
		if name == "" {
			continue
		}
		cleaned = append(cleaned, SlotDraft{
			RoleName:    name,
			QtyRequired: max(d.QtyRequired, 1),
		})
	}

	if len(cleaned) == 0 {
		return nil, &ValidationError{Message: "at least one role is required"}
	}
	return cleaned, nil
}

// BuildSlots turns cleaned drafts into slot rows for a task.
// When existing is non-nil, a draft whose normalized role name matches an existing
// slot reuses that slot's ID (each existing slot is reused at most once); otherwise
// every slot gets a fresh ID from newID.
func BuildSlots(taskID string, drafts []SlotDraft, existing []db.RoleSlot, newID func() string) []db.RoleSlot {
	available := make(map[string][]string)
	for _, s := range existing {
		key := Normalize(s.RoleName)
		available[key] = append(available[key], s.ID)
	}

	slots := make([]db.RoleSlot, 0, len(drafts))
	for _, d := range drafts {
		id := ""
		key := Normalize(d.RoleName)
		if ids := available[key]; len(ids) > 0 {
			id = ids[0]
			available[key] = ids[1:]
		} else {
			id = newID()
		}
		slots = append(slots, db.RoleSlot{
			ID:          id,
			TaskID:      taskID,
			RoleName:    d.RoleName,
			QtyRequired: d.QtyRequired,
		})
	}
	return slots
}

// SlotSummary reports how far a slot is staffed
type SlotSummary struct {
	Slot      db.RoleSlot `json:"slot"`
	MemberIDs []string    `json:"memberIds"`
	Remaining int         `json:"remaining"`
}

// Filled reports whether the slot has reached its quota
func (s SlotSummary) Filled() bool {
	return s.Remaining == 0
}

// SummarizeSlots groups assignments under their slots. Assignments whose slot no
// longer exists are ignored; they reappear only after being reconciled again.
func SummarizeSlots(slots []db.RoleSlot, assignments []db.Assignment) []SlotSummary {
	bySlot := make(map[string][]string, len(slots))
	for _, a := range assignments {
		bySlot[a.SlotID] = append(bySlot[a.SlotID], a.MemberID)
	}

	summaries := make([]SlotSummary, 0, len(slots))
	for _, slot := range slots {
		members := bySlot[slot.ID]
		if members == nil {
			members = []string{}
		}
		summaries = append(summaries, SlotSummary{
			Slot:      slot,
			MemberIDs: members,
			Remaining: max(slot.QtyRequired-len(members), 0),
		})
	}
	return summaries
}

// FindSlot returns the slot with the given ID
func FindSlot(slots []db.RoleSlot, slotID string) (db.RoleSlot, bool) {
	for _, s := range slots {
		if s.ID == slotID {
			return s, true
		}
	}
	return db.RoleSlot{}, false
}
