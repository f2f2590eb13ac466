package store

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gapdebug/gapdebug/internal/types"
)

// Defaults for skills hydrated in bulk from the onboarding skill list.
const (
	HydratedConfidence = 50
	hydratedCategory   = types.CategoryOther
)

// contextSnapshot is the persisted shape of the live context.
type contextSnapshot struct {
	Skills       []types.SkillNode        `json:"skills"`
	Achievements []types.AchievementEntry `json:"achievements"`
}

// ContextStore holds the user-editable skill nodes and achievement entries.
// Every mutation refreshes the relevant timestamp and writes the full store
// snapshot. Snapshot writes are fire-and-forget: failures are logged, never
// returned to the mutator.
type ContextStore struct {
	mu           sync.Mutex
	skills       []types.SkillNode
	achievements []types.AchievementEntry

	snapshots SnapshotStore
	now       func() time.Time
	newID     func() string
}

// NewContextStore creates a store rehydrated from a previously persisted
// snapshot. A missing snapshot yields an empty store.
func NewContextStore(snapshots SnapshotStore) (*ContextStore, error) {
	s := &ContextStore{
		snapshots: snapshots,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}

	data, err := snapshots.Load(SnapshotContext)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var snap contextSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			// A corrupt snapshot should not brick the store; start fresh.
			log.Printf("context store: discarding unreadable snapshot: %v", err)
		} else {
			s.skills = snap.Skills
			s.achievements = snap.Achievements
		}
	}

	return s, nil
}

// AddSkill appends a new skill node with a fresh id and timestamp. Duplicate
// names are permitted; the store performs no de-duplication.
func (s *ContextStore) AddSkill(name string, category types.SkillCategory, confidence int) types.SkillNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !category.Valid() {
		category = types.CategoryOther
	}
	node := types.SkillNode{
		ID:          s.newID(),
		Name:        name,
		Category:    category,
		Confidence:  types.ClampConfidence(confidence),
		LastRefined: s.now(),
	}
	s.skills = append(s.skills, node)
	s.persistLocked()
	return node
}

// HydrateSkills bulk-creates skill nodes from the onboarding skill list with
// default category and confidence. Empty names are skipped.
func (s *ContextStore) HydrateSkills(names []string) []types.SkillNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []types.SkillNode
	for _, name := range names {
		if name == "" {
			continue
		}
		node := types.SkillNode{
			ID:          s.newID(),
			Name:        name,
			Category:    hydratedCategory,
			Confidence:  HydratedConfidence,
			LastRefined: s.now(),
		}
		s.skills = append(s.skills, node)
		added = append(added, node)
	}
	s.persistLocked()
	return added
}

// UpdateSkill merges partial fields into the matching node and refreshes its
// LastRefined timestamp. A missing id is a silent miss: ok is false and the
// collection is unchanged.
func (s *ContextStore) UpdateSkill(id string, update types.SkillUpdate) (types.SkillNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.skills {
		if s.skills[i].ID != id {
			continue
		}
		if update.Name != nil {
			s.skills[i].Name = *update.Name
		}
		if update.Category != nil && update.Category.Valid() {
			s.skills[i].Category = *update.Category
		}
		if update.Confidence != nil {
			s.skills[i].Confidence = types.ClampConfidence(*update.Confidence)
		}
		s.skills[i].LastRefined = s.now()
		s.persistLocked()
		return s.skills[i], true
	}

	s.persistLocked()
	return types.SkillNode{}, false
}

// RemoveSkill deletes the matching node. Idempotent if the id is absent.
func (s *ContextStore) RemoveSkill(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.skills[:0]
	for _, node := range s.skills {
		if node.ID != id {
			filtered = append(filtered, node)
		}
	}
	s.skills = filtered
	s.persistLocked()
}

// Skills returns a copy of the skill collection.
func (s *ContextStore) Skills() []types.SkillNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.SkillNode, len(s.skills))
	copy(out, s.skills)
	return out
}

// AddAchievement prepends a new entry with a fresh id and creation timestamp
// so the most recent entry is always first.
func (s *ContextStore) AddAchievement(rawText, refinedText string, relatedSkills, aiTags []string) types.AchievementEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := types.AchievementEntry{
		ID:            s.newID(),
		RawText:       rawText,
		RefinedText:   refinedText,
		Date:          s.now(),
		RelatedSkills: relatedSkills,
		AITags:        aiTags,
	}
	s.achievements = append([]types.AchievementEntry{entry}, s.achievements...)
	s.persistLocked()
	return entry
}

// RemoveAchievement deletes the matching entry. Idempotent if the id is
// absent.
func (s *ContextStore) RemoveAchievement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.achievements[:0]
	for _, entry := range s.achievements {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	s.achievements = filtered
	s.persistLocked()
}

// Achievements returns a copy of the achievement collection, newest first.
func (s *ContextStore) Achievements() []types.AchievementEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.AchievementEntry, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// persistLocked writes the full store snapshot. Callers must hold s.mu.
func (s *ContextStore) persistLocked() {
	snap := contextSnapshot{Skills: s.skills, Achievements: s.achievements}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("context store: failed to encode snapshot: %v", err)
		return
	}
	if err := s.snapshots.Save(SnapshotContext, data); err != nil {
		log.Printf("context store: failed to persist snapshot: %v", err)
	}
}
