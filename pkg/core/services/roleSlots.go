package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// SlotStore combines the task, slot and assignment operations needed to save and list slots
type SlotStore interface {
	db.RoleSlotStore
	GetTask(ctx context.Context, taskID string) (*db.Task, error)
	GetAssignments(ctx context.Context, taskID string) ([]db.Assignment, error)
}

type taskGetter interface {
	GetTask(ctx context.Context, taskID string) (*db.Task, error)
}

// fetchTask returns db.ErrTaskNotFound unwrapped so callers can map it to a not-found response
func fetchTask(ctx context.Context, store taskGetter, taskID string) (*db.Task, error) {
	task, err := store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, db.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return task, nil
}

// SaveSlotsOptions tunes how a task's role list is replaced
type SaveSlotsOptions struct {
	// PreserveSlotIdentity keeps the ID of an existing slot whose normalized role name
	// matches a draft, so its assignments survive the edit. When false every slot gets
	// a new ID and existing assignments are orphaned until reconciled again.
	PreserveSlotIdentity bool
}

// SaveRoleSlots validates the drafts and replaces all role slots of the task
func SaveRoleSlots(ctx context.Context, store SlotStore, logger *zap.Logger, taskID string, drafts []staffing.SlotDraft, opts SaveSlotsOptions) ([]db.RoleSlot, error) {
	cleaned, err := staffing.CleanSlotDrafts(drafts)
	if err != nil {
		return nil, err
	}

	if _, err := fetchTask(ctx, store, taskID); err != nil {
		return nil, err
	}

	logger.Debug("Saving role slots",
		zap.String("task_id", taskID),
		zap.Int("slot_count", len(cleaned)),
		zap.Bool("preserve_identity", opts.PreserveSlotIdentity))

	var existing []db.RoleSlot
	if opts.PreserveSlotIdentity {
		existing, err = store.GetRoleSlots(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch role slots: %w", err)
		}
	}

	slots := staffing.BuildSlots(taskID, cleaned, existing, func() string {
		return uuid.New().String()
	})

	if err := store.ReplaceRoleSlots(ctx, taskID, slots); err != nil {
		return nil, fmt.Errorf("failed to save role slots: %w", err)
	}

	logger.Info("Role slots saved", zap.String("task_id", taskID), zap.Int("slot_count", len(slots)))

	return slots, nil
}

// ListRoleSlots returns the task's slots with their current fulfillment
func ListRoleSlots(ctx context.Context, store SlotStore, logger *zap.Logger, taskID string) ([]staffing.SlotSummary, error) {
	if _, err := fetchTask(ctx, store, taskID); err != nil {
		return nil, err
	}

	slots, err := store.GetRoleSlots(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role slots: %w", err)
	}

	assignments, err := store.GetAssignments(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	logger.Debug("Listing role slots",
		zap.String("task_id", taskID),
		zap.Int("slots", len(slots)),
		zap.Int("assignments", len(assignments)))

	return staffing.SummarizeSlots(slots, assignments), nil
}
