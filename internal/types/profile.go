// Package types provides type definitions for structured data used throughout
// the coaching system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Persona classifies a user; it drives which onboarding fields are required.
type Persona string

// Persona values
const (
	PersonaStudent   Persona = "student"
	PersonaJobSeeker Persona = "job_seeker"
)

// Socials holds optional social profile URLs collected during onboarding.
type Socials struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Verification splits profile claims into verified and unverified lists.
type Verification struct {
	Verified   []string `json:"verified"`
	Unverified []string `json:"unverified"`
}

// AnalysisResult is the profile-analysis summary attached to a profile.
type AnalysisResult struct {
	Summary      string       `json:"summary"`
	Verification Verification `json:"verification"`
}

// RoadmapStatus tracks progression through a roadmap phase.
type RoadmapStatus string

// RoadmapStatus values. Phases always start as pending and are advanced only
// by explicit user action.
const (
	StatusPending    RoadmapStatus = "pending"
	StatusInProgress RoadmapStatus = "in_progress"
	StatusCompleted  RoadmapStatus = "completed"
)

// RoadmapItem is one phase of a generated learning roadmap.
type RoadmapItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Duration    string        `json:"duration"`
	Resources   []string      `json:"resources"`
	Status      RoadmapStatus `json:"status"`
}

// GapAnalysis is the scored skill-gap summary produced by pathway generation.
type GapAnalysis struct {
	Score         int      `json:"score"`
	MissingSkills []string `json:"missingSkills"`
	Feedback      string   `json:"feedback"`
}

// UserProfile is the client-cached onboarding profile. It is the unit of
// persistence: updates are merge-and-rewrite of the whole object, never
// partial patches.
type UserProfile struct {
	Persona           Persona         `json:"persona" validate:"required,oneof=student job_seeker"`
	Name              string          `json:"name,omitempty"`
	University        string          `json:"university,omitempty"`
	GradYear          string          `json:"gradYear,omitempty"`
	Role              string          `json:"role,omitempty"`
	YearsOfExperience int             `json:"yearsOfExperience,omitempty"`
	Skills            []string        `json:"skills" validate:"required,min=1"`
	Socials           Socials         `json:"socials"`
	Achievements      string          `json:"achievements,omitempty"`
	ResumeURL         string          `json:"resumeUrl,omitempty"`
	Roadmap           []RoadmapItem   `json:"roadmap,omitempty"`
	SkillGaps         []string        `json:"skillGaps,omitempty"`
	RecommendedSkills []string        `json:"recommendedSkills,omitempty"`
	Analysis          *AnalysisResult `json:"analysis,omitempty"`
}

// AnalyzeProfileRequest is the body of POST /api/analyze-profile.
type AnalyzeProfileRequest struct {
	Profile *UserProfile `json:"profile" validate:"required"`
}

// RoadmapRequest is the body of POST /api/generate-roadmap. Goal is required;
// the pathway endpoint accepts the same shape with goal defaulted from the
// profile's role.
type RoadmapRequest struct {
	Profile *UserProfile `json:"profile" validate:"required"`
	Goal    string       `json:"goal"`
}

var validate = validator.New()

// Validate validates the AnalyzeProfileRequest and its embedded profile.
func (r *AnalyzeProfileRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RoadmapRequest and its embedded profile.
func (r *RoadmapRequest) Validate() error {
	return validate.Struct(r)
}
