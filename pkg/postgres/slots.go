package postgres

import (
	"context"
	"fmt"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// GetRoleSlots retrieves the role slots of a task in the order they were saved
func (d *DB) GetRoleSlots(ctx context.Context, taskID string) ([]db.RoleSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, task_id, role_name, qty_required
		FROM task_role_slot
		WHERE task_id = $1
		ORDER BY position, id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role slots: %w", err)
	}
	defer rows.Close()

	var slots []db.RoleSlot
	for rows.Next() {
		var s db.RoleSlot
		if err := rows.Scan(&s.ID, &s.TaskID, &s.RoleName, &s.QtyRequired); err != nil {
			return nil, fmt.Errorf("failed to scan role slot: %w", err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role slots: %w", err)
	}

	return slots, nil
}

// ReplaceRoleSlots deletes every slot of the task and inserts the given ones in a single transaction
func (d *DB) ReplaceRoleSlots(ctx context.Context, taskID string, slots []db.RoleSlot) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_role_slot WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete role slots: %w", err)
	}

	for i, s := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO task_role_slot (id, task_id, role_name, qty_required, position)
			VALUES ($1, $2, $3, $4, $5)
		`, s.ID, taskID, s.RoleName, s.QtyRequired, i)
		if err != nil {
			return fmt.Errorf("failed to insert role slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
