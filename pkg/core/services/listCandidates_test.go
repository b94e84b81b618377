package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

func newCandidateStore() *mockStaffingStore {
	// Wednesday 15:00 UTC
	start := time.Date(2025, 1, 8, 15, 0, 0, 0, time.UTC)

	store := newProfileStore()
	store.tasks = map[string]*db.Task{
		"task-1": {ID: "task-1", MinistryID: "music", Title: "Midweek service", StartAt: start, EndAt: start.Add(2 * time.Hour)},
	}
	store.members = map[string][]db.Member{
		"music": {
			{ID: "alice", FullName: "Alice"},
			{ID: "bob", FullName: "Bob"},
			{ID: "dan", FullName: "Dan"},
		},
	}
	store.applications = append(store.applications,
		db.Application{ID: "app-3", MinistryID: "music", ApplicantID: "dan", Status: db.ApplicationStatusApproved})
	store.answers = append(store.answers,
		db.Answer{ApplicationID: "app-3", RequirementID: "req-skills", Raw: json.RawMessage(`["Percussion"]`)})
	store.slots = []db.RoleSlot{
		{ID: "slot-1", TaskID: "task-1", RoleName: "Drummer (Need 2)", QtyRequired: 2},
	}
	return store
}

func TestListCandidates(t *testing.T) {
	store := newCandidateStore()
	evaluator := staffing.NewEvaluator(staffing.DefaultSynonyms(), time.UTC)

	candidates, err := ListCandidates(context.Background(), store, evaluator, zap.NewNop(), "task-1", "slot-1")

	require.NoError(t, err)
	require.Len(t, candidates, 3)

	byID := make(map[string]Candidate)
	for _, c := range candidates {
		byID[c.Member.ID] = c
	}

	// Alice plays drums but only Sunday mornings
	alice := byID["alice"]
	assert.True(t, alice.Eligibility.SkillMatch)
	assert.False(t, alice.Eligibility.Availability.OK)
	assert.False(t, alice.Selectable)

	// Bob has no approved data: no skill match but selectable
	bob := byID["bob"]
	assert.False(t, bob.Eligibility.SkillMatch)
	assert.True(t, bob.Selectable)

	// Dan is recommended via the drummer synonym table
	dan := byID["dan"]
	assert.True(t, dan.Eligibility.Recommended())

	assert.Equal(t, "dan", candidates[0].Member.ID, "recommended candidates sort first")
	assert.Equal(t, "alice", candidates[2].Member.ID, "blocked candidates sort last")
}

func TestListCandidates_AssignedMemberStaysSelectable(t *testing.T) {
	store := newCandidateStore()
	store.assignments = []db.Assignment{{TaskID: "task-1", MemberID: "alice", SlotID: "slot-1"}}
	evaluator := staffing.NewEvaluator(staffing.DefaultSynonyms(), time.UTC)

	candidates, err := ListCandidates(context.Background(), store, evaluator, zap.NewNop(), "task-1", "slot-1")

	require.NoError(t, err)
	assert.Equal(t, "alice", candidates[0].Member.ID)
	assert.True(t, candidates[0].Assigned)
	assert.True(t, candidates[0].Selectable)
}

func TestListCandidates_MissingTaskOrSlot(t *testing.T) {
	store := newCandidateStore()
	evaluator := staffing.NewEvaluator(staffing.DefaultSynonyms(), time.UTC)

	_, err := ListCandidates(context.Background(), store, evaluator, zap.NewNop(), "task-404", "slot-1")
	assert.True(t, errors.Is(err, db.ErrTaskNotFound))

	_, err = ListCandidates(context.Background(), store, evaluator, zap.NewNop(), "task-1", "slot-404")
	assert.True(t, errors.Is(err, staffing.ErrSlotNotFound))
}
