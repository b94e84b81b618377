package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// GetActiveRequirements retrieves the active questionnaire items of the given ministries
func (d *DB) GetActiveRequirements(ctx context.Context, ministryIDs []string) ([]db.Requirement, error) {
	if len(ministryIDs) == 0 {
		return []db.Requirement{}, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, ministry_id, title, type, is_active
		FROM ministry_requirement
		WHERE is_active AND ministry_id = ANY($1)
		ORDER BY ministry_id, id
	`, ministryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer rows.Close()

	var requirements []db.Requirement
	for rows.Next() {
		var r db.Requirement
		if err := rows.Scan(&r.ID, &r.MinistryID, &r.Title, &r.Type, &r.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requirements: %w", err)
	}

	return requirements, nil
}

// GetApprovedApplications retrieves approved applications of the given members to the given ministries
func (d *DB) GetApprovedApplications(ctx context.Context, ministryIDs, memberIDs []string) ([]db.Application, error) {
	if len(ministryIDs) == 0 || len(memberIDs) == 0 {
		return []db.Application{}, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, ministry_id, applicant_id, status
		FROM ministry_application
		WHERE status = $1 AND ministry_id = ANY($2) AND applicant_id = ANY($3)
		ORDER BY id
	`, db.ApplicationStatusApproved, ministryIDs, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var applications []db.Application
	for rows.Next() {
		var a db.Application
		if err := rows.Scan(&a.ID, &a.MinistryID, &a.ApplicantID, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return applications, nil
}

// GetAnswers retrieves the raw answers of the given applications
func (d *DB) GetAnswers(ctx context.Context, applicationIDs []string) ([]db.Answer, error) {
	if len(applicationIDs) == 0 {
		return []db.Answer{}, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT application_id, requirement_id, raw
		FROM application_answer
		WHERE application_id = ANY($1)
		ORDER BY application_id, requirement_id
	`, applicationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []db.Answer
	for rows.Next() {
		var a db.Answer
		var raw string
		if err := rows.Scan(&a.ApplicationID, &a.RequirementID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		a.Raw = json.RawMessage(raw)
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}

	return answers, nil
}
