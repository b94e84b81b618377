package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// ReconcileResult describes what a reconciliation wrote
type ReconcileResult struct {
	Slot  db.RoleSlot
	Delta staffing.Delta
}

// ReconcileSlotAssignment moves the slot's persisted members to exactly desiredMemberIDs.
//
// The slot is re-read and its quota checked before anything is written, so a stale
// UI cannot overfill it. Additions are upserted on (task, member), which moves a member
// out of any other slot of the same task. Removals only touch rows still on this slot.
// A failed removal after successful additions is not rolled back; reconciling again
// converges.
func ReconcileSlotAssignment(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, taskID, slotID string, desiredMemberIDs []string) (*ReconcileResult, error) {
	desired := staffing.Unique(desiredMemberIDs)

	logger.Debug("Reconciling slot assignment",
		zap.String("task_id", taskID),
		zap.String("slot_id", slotID),
		zap.Strings("desired", desired))

	slots, err := store.GetRoleSlots(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role slots: %w", err)
	}

	slot, ok := staffing.FindSlot(slots, slotID)
	if !ok {
		return nil, fmt.Errorf("slot %s on task %s: %w", slotID, taskID, staffing.ErrSlotNotFound)
	}

	if err := staffing.CheckQuota(slot, desired); err != nil {
		logger.Info("Reconciliation rejected",
			zap.String("slot_id", slotID),
			zap.Int("limit", slot.QtyRequired),
			zap.Int("requested", len(desired)))
		return nil, err
	}

	assignments, err := store.GetAssignments(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	current := staffing.CurrentMembers(assignments, taskID, slotID)
	delta := staffing.Diff(current, desired)

	logger.Debug("Computed assignment delta",
		zap.Strings("current", current),
		zap.Strings("to_add", delta.ToAdd),
		zap.Strings("to_remove", delta.ToRemove))

	if len(delta.ToAdd) > 0 {
		now := time.Now().UTC()
		rows := make([]db.Assignment, 0, len(delta.ToAdd))
		for _, memberID := range delta.ToAdd {
			rows = append(rows, db.Assignment{
				ID:         uuid.New().String(),
				TaskID:     taskID,
				MemberID:   memberID,
				SlotID:     slotID,
				AssignedAt: now,
			})
		}
		if err := store.UpsertAssignments(ctx, rows); err != nil {
			return nil, fmt.Errorf("failed to add assignments: %w", err)
		}
	}

	if len(delta.ToRemove) > 0 {
		if err := store.DeleteAssignments(ctx, taskID, delta.ToRemove, slotID); err != nil {
			return nil, fmt.Errorf("failed to remove assignments: %w", err)
		}
	}

	logger.Info("Slot assignment reconciled",
		zap.String("task_id", taskID),
		zap.String("slot_id", slotID),
		zap.Int("added", len(delta.ToAdd)),
		zap.Int("removed", len(delta.ToRemove)))

	return &ReconcileResult{Slot: slot, Delta: delta}, nil
}
