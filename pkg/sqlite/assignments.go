package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// GetAssignments retrieves the task's assignments whose slot still exists
func (d *DB) GetAssignments(ctx context.Context, taskID string) ([]db.Assignment, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT a.id, a.task_id, a.member_id, a.slot_id, a.assigned_at
		FROM task_assignment a
		JOIN task_role_slot s ON s.id = a.slot_id AND s.task_id = a.task_id
		WHERE a.task_id = ?
		ORDER BY a.assigned_at, a.id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var assignedAt sql.NullString
		if err := rows.Scan(&a.ID, &a.TaskID, &a.MemberID, &a.SlotID, &assignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if a.AssignedAt, err = parseTime(assignedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// UpsertAssignments writes assignment rows keyed on (task, member).
// A member already assigned elsewhere on the task is moved to the row's slot.
func (d *DB) UpsertAssignments(ctx context.Context, rows []db.Assignment) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_assignment (id, task_id, member_id, slot_id, assigned_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (task_id, member_id)
			DO UPDATE SET slot_id = excluded.slot_id, assigned_at = excluded.assigned_at
		`, a.ID, a.TaskID, a.MemberID, a.SlotID, a.AssignedAt.UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("failed to upsert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteAssignments removes the given members from one slot of a task
func (d *DB) DeleteAssignments(ctx context.Context, taskID string, memberIDs []string, slotID string) error {
	if len(memberIDs) == 0 {
		return nil
	}

	in, memberArgs := inClause(memberIDs)
	args := append([]any{taskID, slotID}, memberArgs...)

	_, err := d.conn.ExecContext(ctx, `
		DELETE FROM task_assignment
		WHERE task_id = ? AND slot_id = ? AND member_id IN (`+in+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	return nil
}
