package db

import (
	"context"
	"errors"
)

// ErrTaskNotFound is returned when a task lookup matches no row
var ErrTaskNotFound = errors.New("task not found")

// ProfileStore defines the questionnaire reads used to build member profiles
type ProfileStore interface {
	GetActiveRequirements(ctx context.Context, ministryIDs []string) ([]Requirement, error)
	GetApprovedApplications(ctx context.Context, ministryIDs, memberIDs []string) ([]Application, error)
	GetAnswers(ctx context.Context, applicationIDs []string) ([]Answer, error)
}

// RoleSlotStore defines the interface for role slot operations
type RoleSlotStore interface {
	GetRoleSlots(ctx context.Context, taskID string) ([]RoleSlot, error)
	// ReplaceRoleSlots deletes every slot of the task and inserts the given ones
	ReplaceRoleSlots(ctx context.Context, taskID string, slots []RoleSlot) error
}

// AssignmentStore defines the interface for assignment reconciliation.
// UpsertAssignments is keyed on (task, member); DeleteAssignments only removes rows
// that still reference slotID.
type AssignmentStore interface {
	GetRoleSlots(ctx context.Context, taskID string) ([]RoleSlot, error)
	GetAssignments(ctx context.Context, taskID string) ([]Assignment, error)
	UpsertAssignments(ctx context.Context, rows []Assignment) error
	DeleteAssignments(ctx context.Context, taskID string, memberIDs []string, slotID string) error
}

// TaskStore defines the reads needed to list candidates for a task
type TaskStore interface {
	GetTask(ctx context.Context, taskID string) (*Task, error)
	GetMinistryMembers(ctx context.Context, ministryID string) ([]Member, error)
}

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	ProfileStore
	TaskStore
	RoleSlotStore
	AssignmentStore
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
