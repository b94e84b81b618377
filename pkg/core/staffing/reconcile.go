package staffing

import "github.com/phongzhu/e-elyon/pkg/db"

// Delta is the minimal change that moves a slot from its current members to the desired ones
type Delta struct {
	ToAdd    []string `json:"toAdd"`
	ToRemove []string `json:"toRemove"`
}

// Empty reports whether applying the delta would write nothing
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Diff computes desired - current and current - desired. ToAdd follows the order of
// desired and ToRemove the order of current; duplicates and blank IDs are ignored.
func Diff(current, desired []string) Delta {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	delta := Delta{ToAdd: []string{}, ToRemove: []string{}}
	for _, id := range Unique(desired) {
		if !currentSet[id] {
			delta.ToAdd = append(delta.ToAdd, id)
		}
	}
	for _, id := range Unique(current) {
		if !desiredSet[id] {
			delta.ToRemove = append(delta.ToRemove, id)
		}
	}
	return delta
}

// CurrentMembers returns the members assigned to slotID on the task, in row order
func CurrentMembers(assignments []db.Assignment, taskID, slotID string) []string {
	members := []string{}
	for _, a := range assignments {
		if a.TaskID == taskID && a.SlotID == slotID {
			members = append(members, a.MemberID)
		}
	}
	return members
}

// CheckQuota rejects a desired member set larger than the slot's required quantity
func CheckQuota(slot db.RoleSlot, desired []string) error {
	if requested := len(Unique(desired)); requested > slot.QtyRequired {
		return &QuotaExceededError{
			SlotID:    slot.ID,
			RoleName:  slot.RoleName,
			Limit:     slot.QtyRequired,
			Requested: requested,
		}
	}
	return nil
}

// Unique returns ids without blanks or repeats, keeping first occurrences in order
func Unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
