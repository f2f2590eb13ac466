package types

import "time"

// SkillCategory groups skill nodes on the dashboard.
type SkillCategory string

// SkillCategory values
const (
	CategoryFrontend SkillCategory = "frontend"
	CategoryBackend  SkillCategory = "backend"
	CategorySoft     SkillCategory = "soft"
	CategoryTools    SkillCategory = "tools"
	CategoryOther    SkillCategory = "other"
)

// Valid reports whether the category is a known value.
func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategorySoft, CategoryTools, CategoryOther:
		return true
	}
	return false
}

// ClampConfidence clamps a confidence value to the [0, 100] range.
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SkillNode is a user-editable skill in the live context store.
// LastRefined advances on every create or update, never on read.
type SkillNode struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Confidence  int           `json:"confidence"`
	LastRefined time.Time     `json:"lastRefined"`
}

// SkillUpdate carries partial skill fields for an update. Nil fields are
// left untouched.
type SkillUpdate struct {
	Name       *string        `json:"name,omitempty"`
	Category   *SkillCategory `json:"category,omitempty"`
	Confidence *int           `json:"confidence,omitempty"`
}

// AchievementEntry is a structured brain-dump note. Entries are immutable
// once created; Date is the creation timestamp.
type AchievementEntry struct {
	ID            string    `json:"id"`
	RawText       string    `json:"rawText"`
	RefinedText   string    `json:"refinedText"`
	Date          time.Time `json:"date"`
	RelatedSkills []string  `json:"relatedSkills"`
	AITags        []string  `json:"aiTags"`
}
