package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
)

func TestParseSlotDraft(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected staffing.SlotDraft
	}{
		{"role only defaults to one", "Usher", staffing.SlotDraft{RoleName: "Usher", QtyRequired: 1}},
		{"role with quantity", "Drummer:2", staffing.SlotDraft{RoleName: "Drummer", QtyRequired: 2}},
		{"spaces are trimmed", " Sound Tech : 3 ", staffing.SlotDraft{RoleName: "Sound Tech", QtyRequired: 3}},
		{"last colon separates quantity", "Media: Slides:1", staffing.SlotDraft{RoleName: "Media: Slides", QtyRequired: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := parseSlotDraft(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, draft)
		})
	}
}

func TestParseSlotDraft_InvalidQuantity(t *testing.T) {
	_, err := parseSlotDraft("Drummer:two")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")
}

func TestCandidateStatus(t *testing.T) {
	available := staffing.AvailabilityResult{OK: true}
	blocked := staffing.AvailabilityResult{OK: false}

	tests := []struct {
		name      string
		candidate services.Candidate
		expected  string
	}{
		{"assigned wins", services.Candidate{Assigned: true, Selectable: true, Eligibility: staffing.EligibilityResult{Availability: blocked}}, "Assigned"},
		{"blocked", services.Candidate{Eligibility: staffing.EligibilityResult{SkillMatch: true, Availability: blocked}}, "Unavailable"},
		{"on another slot", services.Candidate{Selectable: true, AssignedSlotID: "slot-2", Eligibility: staffing.EligibilityResult{Availability: available}}, "Other slot"},
		{"recommended", services.Candidate{Selectable: true, Eligibility: staffing.EligibilityResult{SkillMatch: true, Availability: available}}, "Recommended"},
		{"available", services.Candidate{Selectable: true, Eligibility: staffing.EligibilityResult{Availability: available}}, "Available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, _ := candidateStatus(tt.candidate)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestFormatAvailability(t *testing.T) {
	assert.Contains(t, formatAvailability(nil), "no restrictions")
	assert.Equal(t, "Sunday, Wed (mornings)", formatAvailability(&staffing.AvailabilityDescriptor{
		Days:  []string{"Sunday", "Wed"},
		Notes: " mornings ",
	}))
	assert.Equal(t, "any day", formatAvailability(&staffing.AvailabilityDescriptor{}))
}
