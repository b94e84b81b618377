package services

import (
	"context"
	"slices"

	"github.com/phongzhu/e-elyon/pkg/db"
)

// mockStaffingStore implements every store interface used by the services.
// Writes are applied to the in-memory rows and recorded so tests can assert on them.
type mockStaffingStore struct {
	tasks        map[string]*db.Task
	members      map[string][]db.Member
	requirements []db.Requirement
	applications []db.Application
	answers      []db.Answer
	slots        []db.RoleSlot
	assignments  []db.Assignment

	upsertCalls  [][]db.Assignment
	deleteCalls  [][]string
	replaceCalls [][]db.RoleSlot

	getTaskErr         error
	getRequirementsErr error
	getApplicationsErr error
	getAnswersErr      error
	getSlotsErr        error
	getAssignmentsErr  error
	upsertErr          error
	deleteErr          error
	replaceErr         error
	getMembersErr      error
}

func (m *mockStaffingStore) GetActiveRequirements(ctx context.Context, ministryIDs []string) ([]db.Requirement, error) {
	if m.getRequirementsErr != nil {
		return nil, m.getRequirementsErr
	}
	var result []db.Requirement
	for _, r := range m.requirements {
		if r.IsActive && slices.Contains(ministryIDs, r.MinistryID) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockStaffingStore) GetApprovedApplications(ctx context.Context, ministryIDs, memberIDs []string) ([]db.Application, error) {
	if m.getApplicationsErr != nil {
		return nil, m.getApplicationsErr
	}
	var result []db.Application
	for _, a := range m.applications {
		if a.Status == db.ApplicationStatusApproved &&
			slices.Contains(ministryIDs, a.MinistryID) &&
			slices.Contains(memberIDs, a.ApplicantID) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockStaffingStore) GetAnswers(ctx context.Context, applicationIDs []string) ([]db.Answer, error) {
	if m.getAnswersErr != nil {
		return nil, m.getAnswersErr
	}
	var result []db.Answer
	for _, a := range m.answers {
		if slices.Contains(applicationIDs, a.ApplicationID) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockStaffingStore) GetTask(ctx context.Context, taskID string) (*db.Task, error) {
	if m.getTaskErr != nil {
		return nil, m.getTaskErr
	}
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, db.ErrTaskNotFound
	}
	return task, nil
}

func (m *mockStaffingStore) GetMinistryMembers(ctx context.Context, ministryID string) ([]db.Member, error) {
	if m.getMembersErr != nil {
		return nil, m.getMembersErr
	}
	return m.members[ministryID], nil
}

func (m *mockStaffingStore) GetRoleSlots(ctx context.Context, taskID string) ([]db.RoleSlot, error) {
	if m.getSlotsErr != nil {
		return nil, m.getSlotsErr
	}
	var result []db.RoleSlot
	for _, s := range m.slots {
		if s.TaskID == taskID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStaffingStore) ReplaceRoleSlots(ctx context.Context, taskID string, slots []db.RoleSlot) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls = append(m.replaceCalls, slots)
	kept := m.slots[:0]
	for _, s := range m.slots {
		if s.TaskID != taskID {
			kept = append(kept, s)
		}
	}
	m.slots = append(kept, slots...)
	return nil
}

// GetAssignments mirrors the real stores: rows whose slot no longer exists are not returned
func (m *mockStaffingStore) GetAssignments(ctx context.Context, taskID string) ([]db.Assignment, error) {
	if m.getAssignmentsErr != nil {
		return nil, m.getAssignmentsErr
	}
	var result []db.Assignment
	for _, a := range m.assignments {
		if a.TaskID != taskID {
			continue
		}
		for _, s := range m.slots {
			if s.ID == a.SlotID {
				result = append(result, a)
				break
			}
		}
	}
	return result, nil
}

func (m *mockStaffingStore) UpsertAssignments(ctx context.Context, rows []db.Assignment) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertCalls = append(m.upsertCalls, rows)
	for _, row := range rows {
		replaced := false
		for i := range m.assignments {
			if m.assignments[i].TaskID == row.TaskID && m.assignments[i].MemberID == row.MemberID {
				m.assignments[i].SlotID = row.SlotID
				m.assignments[i].AssignedAt = row.AssignedAt
				replaced = true
				break
			}
		}
		if !replaced {
			m.assignments = append(m.assignments, row)
		}
	}
	return nil
}

func (m *mockStaffingStore) DeleteAssignments(ctx context.Context, taskID string, memberIDs []string, slotID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalls = append(m.deleteCalls, memberIDs)
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if a.TaskID == taskID && a.SlotID == slotID && slices.Contains(memberIDs, a.MemberID) {
			continue
		}
		kept = append(kept, a)
	}
	m.assignments = kept
	return nil
}

func (m *mockStaffingStore) membersOf(taskID, slotID string) []string {
	var result []string
	for _, a := range m.assignments {
		if a.TaskID == taskID && a.SlotID == slotID {
			result = append(result, a.MemberID)
		}
	}
	return result
}
