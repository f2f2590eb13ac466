package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapdebug/gapdebug/internal/types"
)

func newTestStore(t *testing.T) *ContextStore {
	t.Helper()
	s, err := NewContextStore(NewMemorySnapshots())
	require.NoError(t, err)
	return s
}

func TestAddSkill_RemoveSkill_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	before := s.Skills()
	node := s.AddSkill("Go", types.CategoryBackend, 80)
	require.Len(t, s.Skills(), 1)

	s.RemoveSkill(node.ID)
	assert.Equal(t, before, s.Skills())
}

func TestAddSkill_DuplicateNamesGetDistinctIDs(t *testing.T) {
	s := newTestStore(t)

	first := s.AddSkill("Python", types.CategoryBackend, 70)
	second := s.AddSkill("Python", types.CategoryBackend, 70)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Skills(), 2)
}

func TestAddSkill_ClampsAndDefaults(t *testing.T) {
	s := newTestStore(t)

	over := s.AddSkill("CSS", types.CategoryFrontend, 150)
	assert.Equal(t, 100, over.Confidence)

	under := s.AddSkill("Excel", types.CategoryTools, -5)
	assert.Equal(t, 0, under.Confidence)

	unknown := s.AddSkill("Juggling", types.SkillCategory("circus"), 50)
	assert.Equal(t, types.CategoryOther, unknown.Category)
}

func TestUpdateSkill_RefreshesLastRefined(t *testing.T) {
	s := newTestStore(t)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	node := s.AddSkill("Go", types.CategoryBackend, 40)
	created := node.LastRefined

	current = current.Add(time.Hour)
	confidence := 90
	updated, ok := s.UpdateSkill(node.ID, types.SkillUpdate{Confidence: &confidence})
	require.True(t, ok)

	assert.Equal(t, 90, updated.Confidence)
	assert.True(t, updated.LastRefined.After(created))
	// Untouched fields survive the merge
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, types.CategoryBackend, updated.Category)
}

func TestUpdateSkill_MissingIDIsSilentMiss(t *testing.T) {
	s := newTestStore(t)
	s.AddSkill("Go", types.CategoryBackend, 50)

	confidence := 10
	_, ok := s.UpdateSkill("no-such-id", types.SkillUpdate{Confidence: &confidence})

	assert.False(t, ok)
	assert.Len(t, s.Skills(), 1)
	assert.Equal(t, 50, s.Skills()[0].Confidence)
}

func TestUpdateSkill_ClampsConfidence(t *testing.T) {
	s := newTestStore(t)
	node := s.AddSkill("Go", types.CategoryBackend, 50)

	confidence := 500
	updated, ok := s.UpdateSkill(node.ID, types.SkillUpdate{Confidence: &confidence})
	require.True(t, ok)
	assert.Equal(t, 100, updated.Confidence)
}

func TestRemoveSkill_Idempotent(t *testing.T) {
	s := newTestStore(t)
	node := s.AddSkill("Go", types.CategoryBackend, 50)

	s.RemoveSkill(node.ID)
	s.RemoveSkill(node.ID)
	assert.Empty(t, s.Skills())
}

func TestHydrateSkills_Defaults(t *testing.T) {
	s := newTestStore(t)

	added := s.HydrateSkills([]string{"Python", "", "SQL"})

	require.Len(t, added, 2)
	for _, node := range added {
		assert.Equal(t, types.CategoryOther, node.Category)
		assert.Equal(t, HydratedConfidence, node.Confidence)
		assert.NotEmpty(t, node.ID)
	}
	assert.Len(t, s.Skills(), 2)
}

func TestAddAchievement_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	s.AddAchievement("built a compiler", "• Built a compiler", nil, nil)
	second := s.AddAchievement("won hackathon", "• Won hackathon", []string{"Go"}, []string{"competition"})

	entries := s.Achievements()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, "won hackathon", entries[0].RawText)
}

func TestRemoveAchievement_Idempotent(t *testing.T) {
	s := newTestStore(t)
	entry := s.AddAchievement("shipped feature", "• Shipped feature", nil, nil)

	s.RemoveAchievement(entry.ID)
	s.RemoveAchievement(entry.ID)
	s.RemoveAchievement("never-existed")
	assert.Empty(t, s.Achievements())
}

func TestContextStore_PersistsAcrossInstances(t *testing.T) {
	snapshots := NewMemorySnapshots()

	first, err := NewContextStore(snapshots)
	require.NoError(t, err)
	skill := first.AddSkill("Go", types.CategoryBackend, 75)
	first.AddAchievement("did a thing", "• Did a thing", nil, nil)

	second, err := NewContextStore(snapshots)
	require.NoError(t, err)

	require.Len(t, second.Skills(), 1)
	assert.Equal(t, skill.ID, second.Skills()[0].ID)
	require.Len(t, second.Achievements(), 1)
}

func TestContextStore_CorruptSnapshotStartsEmpty(t *testing.T) {
	snapshots := NewMemorySnapshots()
	require.NoError(t, snapshots.Save(SnapshotContext, []byte("not json")))

	s, err := NewContextStore(snapshots)
	require.NoError(t, err)
	assert.Empty(t, s.Skills())
	assert.Empty(t, s.Achievements())
}
