package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// CandidateStore defines the reads needed to annotate a slot's candidate pool
type CandidateStore interface {
	db.TaskStore
	db.ProfileStore
	GetRoleSlots(ctx context.Context, taskID string) ([]db.RoleSlot, error)
	GetAssignments(ctx context.Context, taskID string) ([]db.Assignment, error)
}

// Candidate is one ministry member as shown in the staffing dialog of a slot
type Candidate struct {
	Member         db.Member                  `json:"member"`
	Profile        *staffing.MemberProfile    `json:"profile"`
	Eligibility    staffing.EligibilityResult `json:"eligibility"`
	Assigned       bool                       `json:"assigned"`
	AssignedSlotID string                     `json:"assignedSlotId,omitempty"`
	Selectable     bool                       `json:"selectable"`
}

// ListCandidates annotates every member of the task's ministry for one role slot.
// Members already on the slot stay selectable so they can be removed even when their
// availability no longer fits. Recommended candidates sort first.
func ListCandidates(ctx context.Context, store CandidateStore, evaluator *staffing.Evaluator, logger *zap.Logger, taskID, slotID string) ([]Candidate, error) {
	task, err := fetchTask(ctx, store, taskID)
	if err != nil {
		return nil, err
	}

	slots, err := store.GetRoleSlots(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role slots: %w", err)
	}
	slot, ok := staffing.FindSlot(slots, slotID)
	if !ok {
		return nil, fmt.Errorf("slot %s on task %s: %w", slotID, taskID, staffing.ErrSlotNotFound)
	}

	members, err := store.GetMinistryMembers(ctx, task.MinistryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ministry members: %w", err)
	}

	assignments, err := store.GetAssignments(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	assignedSlot := make(map[string]string, len(assignments))
	for _, a := range assignments {
		assignedSlot[a.MemberID] = a.SlotID
	}

	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	profiles, err := BuildMemberProfiles(ctx, store, logger, []string{task.MinistryID}, memberIDs)
	if err != nil {
		return nil, err
	}

	window := staffing.TaskWindow{Start: task.StartAt, End: task.EndAt}
	candidates := make([]Candidate, 0, len(members))
	for _, m := range members {
		profile := profiles[staffing.ProfileKey{MinistryID: task.MinistryID, MemberID: m.ID}]
		result := evaluator.Evaluate(slot.RoleName, profile, window)
		currentSlot, hasAssignment := assignedSlot[m.ID]
		onThisSlot := hasAssignment && currentSlot == slotID

		candidates = append(candidates, Candidate{
			Member:         m,
			Profile:        profile,
			Eligibility:    result,
			Assigned:       onThisSlot,
			AssignedSlotID: currentSlot,
			Selectable:     result.Selectable() || onThisSlot,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return rank(candidates[i]) < rank(candidates[j])
	})

	logger.Debug("Candidates listed",
		zap.String("task_id", taskID),
		zap.String("slot_id", slotID),
		zap.String("role", slot.RoleName),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// rank orders assigned members first, then recommended, then available, then blocked
func rank(c Candidate) int {
	switch {
	case c.Assigned:
		return 0
	case c.Eligibility.Recommended():
		return 1
	case c.Eligibility.Availability.OK:
		return 2
	default:
		return 3
	}
}
