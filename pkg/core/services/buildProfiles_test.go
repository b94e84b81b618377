package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

func newProfileStore() *mockStaffingStore {
	return &mockStaffingStore{
		requirements: []db.Requirement{
			{ID: "req-skills", MinistryID: "music", Title: "Skills", Type: "multi_select", IsActive: true},
			{ID: "req-avail", MinistryID: "music", Title: "Availability", Type: "object", IsActive: true},
		},
		applications: []db.Application{
			{ID: "app-1", MinistryID: "music", ApplicantID: "alice", Status: db.ApplicationStatusApproved},
			{ID: "app-2", MinistryID: "music", ApplicantID: "bob", Status: "Pending"},
		},
		answers: []db.Answer{
			{ApplicationID: "app-1", RequirementID: "req-skills", Raw: json.RawMessage(`{"selected":["Drums"],"other_checked":true,"other_text":"Stage Lighting"}`)},
			{ApplicationID: "app-1", RequirementID: "req-avail", Raw: json.RawMessage(`{"days":["Sunday"],"notes":"morning only"}`)},
			{ApplicationID: "app-2", RequirementID: "req-skills", Raw: json.RawMessage(`["Bass"]`)},
		},
	}
}

func TestBuildMemberProfiles(t *testing.T) {
	store := newProfileStore()

	profiles, err := BuildMemberProfiles(context.Background(), store, zap.NewNop(), []string{"music"}, []string{"alice", "bob", "carol"})

	require.NoError(t, err)
	require.Len(t, profiles, 3)

	alice := profiles[staffing.ProfileKey{MinistryID: "music", MemberID: "alice"}]
	assert.Equal(t, []string{"drums", "stage lighting"}, alice.Skills)
	require.NotNil(t, alice.Availability)
	assert.Equal(t, []string{"Sunday"}, alice.Availability.Days)

	// Pending applications do not count, but the member is still listed
	bob := profiles[staffing.ProfileKey{MinistryID: "music", MemberID: "bob"}]
	assert.Empty(t, bob.Skills)
	assert.Nil(t, bob.Availability)

	carol := profiles[staffing.ProfileKey{MinistryID: "music", MemberID: "carol"}]
	assert.NotNil(t, carol)
}

func TestBuildMemberProfiles_NoInput(t *testing.T) {
	store := &mockStaffingStore{getRequirementsErr: errors.New("should not be called")}

	profiles, err := BuildMemberProfiles(context.Background(), store, zap.NewNop(), nil, []string{"alice"})

	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestBuildMemberProfiles_TransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*mockStaffingStore)
		wantErr string
	}{
		{"requirements", func(m *mockStaffingStore) { m.getRequirementsErr = errors.New("boom") }, "failed to fetch requirements: boom"},
		{"applications", func(m *mockStaffingStore) { m.getApplicationsErr = errors.New("boom") }, "failed to fetch applications: boom"},
		{"answers", func(m *mockStaffingStore) { m.getAnswersErr = errors.New("boom") }, "failed to fetch answers: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newProfileStore()
			tt.mutate(store)

			_, err := BuildMemberProfiles(context.Background(), store, zap.NewNop(), []string{"music"}, []string{"alice"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
