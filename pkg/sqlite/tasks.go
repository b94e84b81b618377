package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// GetTask retrieves a task by ID, returning db.ErrTaskNotFound when it does not exist
func (d *DB) GetTask(ctx context.Context, taskID string) (*db.Task, error) {
	var t db.Task
	var startAt, endAt sql.NullString
	err := d.conn.QueryRowContext(ctx, `
		SELECT id, ministry_id, title, start_at, end_at
		FROM ministry_task
		WHERE id = ?
	`, taskID).Scan(&t.ID, &t.MinistryID, &t.Title, &startAt, &endAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	if t.StartAt, err = parseTime(startAt); err != nil {
		return nil, err
	}
	if t.EndAt, err = parseTime(endAt); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetMinistryMembers retrieves the members of a ministry ordered by name
func (d *DB) GetMinistryMembers(ctx context.Context, ministryID string) ([]db.Member, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT m.id, m.full_name, m.email
		FROM member m
		JOIN ministry_member mm ON mm.member_id = m.id
		WHERE mm.ministry_id = ?
		ORDER BY m.full_name, m.id
	`, ministryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ministry members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		var email sql.NullString
		if err := rows.Scan(&m.ID, &m.FullName, &email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Email = email.String
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
