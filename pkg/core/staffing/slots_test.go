package staffing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phongzhu/e-elyon/pkg/db"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestCleanSlotDrafts_TrimsAndClamps(t *testing.T) {
	cleaned, err := CleanSlotDrafts([]SlotDraft{
		{RoleName: "  Drummer ", QtyRequired: 2},
		{RoleName: "Usher", QtyRequired: 0},
		{RoleName: "Media", QtyRequired: -3},
	})

	require.NoError(t, err)
	assert.Equal(t, []SlotDraft{
		{RoleName: "Drummer", QtyRequired: 2},
		{RoleName: "Usher", QtyRequired: 1},
		{RoleName: "Media", QtyRequired: 1},
	}, cleaned)
}

func TestCleanSlotDrafts_DropsBlankNames(t *testing.T) {
	cleaned, err := CleanSlotDrafts([]SlotDraft{
		{RoleName: "   ", QtyRequired: 2},
		{RoleName: "Singer", QtyRequired: 3},
	})

	require.NoError(t, err)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "Singer", cleaned[0].RoleName)
}

func TestCleanSlotDrafts_RequiresOneRole(t *testing.T) {
	_, err := CleanSlotDrafts([]SlotDraft{{RoleName: " ", QtyRequired: 1}})

	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "at least one role")

	_, err = CleanSlotDrafts(nil)
	assert.True(t, IsValidation(err))
}

func TestBuildSlots_FreshIDs(t *testing.T) {
	existing := []db.RoleSlot{{ID: "old-1", TaskID: "task-1", RoleName: "Drummer", QtyRequired: 1}}
	drafts := []SlotDraft{{RoleName: "Drummer", QtyRequired: 2}}

	slots := BuildSlots("task-1", drafts, nil, sequentialIDs("new"))
	require.Len(t, slots, 1)
	assert.Equal(t, "new-1", slots[0].ID, "without existing slots every slot is new")

	preserved := BuildSlots("task-1", drafts, existing, sequentialIDs("new"))
	require.Len(t, preserved, 1)
	assert.Equal(t, "old-1", preserved[0].ID)
	assert.Equal(t, 2, preserved[0].QtyRequired)
}

func TestBuildSlots_PreserveMatchesNormalizedNamesOnce(t *testing.T) {
	existing := []db.RoleSlot{
		{ID: "old-1", RoleName: "Sound Tech"},
		{ID: "old-2", RoleName: "Usher"},
	}
	drafts := []SlotDraft{
		{RoleName: "sound-tech", QtyRequired: 1},
		{RoleName: "Sound Tech", QtyRequired: 1},
		{RoleName: "Greeter", QtyRequired: 2},
	}

	slots := BuildSlots("task-1", drafts, existing, sequentialIDs("new"))

	require.Len(t, slots, 3)
	assert.Equal(t, "old-1", slots[0].ID)
	assert.Equal(t, "new-1", slots[1].ID)
	assert.Equal(t, "new-2", slots[2].ID)
	for _, s := range slots {
		assert.Equal(t, "task-1", s.TaskID)
	}
}

func TestSummarizeSlots(t *testing.T) {
	slots := []db.RoleSlot{
		{ID: "slot-1", RoleName: "Drummer", QtyRequired: 2},
		{ID: "slot-2", RoleName: "Usher", QtyRequired: 1},
	}
	assignments := []db.Assignment{
		{TaskID: "task-1", MemberID: "alice", SlotID: "slot-1"},
		{TaskID: "task-1", MemberID: "bob", SlotID: "slot-2"},
		{TaskID: "task-1", MemberID: "carol", SlotID: "deleted-slot"},
	}

	summaries := SummarizeSlots(slots, assignments)

	require.Len(t, summaries, 2)
	assert.Equal(t, []string{"alice"}, summaries[0].MemberIDs)
	assert.Equal(t, 1, summaries[0].Remaining)
	assert.False(t, summaries[0].Filled())
	assert.Equal(t, []string{"bob"}, summaries[1].MemberIDs)
	assert.True(t, summaries[1].Filled())
}

func TestFindSlot(t *testing.T) {
	slots := []db.RoleSlot{{ID: "slot-1"}, {ID: "slot-2"}}

	slot, ok := FindSlot(slots, "slot-2")
	assert.True(t, ok)
	assert.Equal(t, "slot-2", slot.ID)

	_, ok = FindSlot(slots, "slot-3")
	assert.False(t, ok)
}
