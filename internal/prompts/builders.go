package prompts

import (
	"strconv"
	"strings"

	"github.com/gapdebug/gapdebug/internal/types"
)

// MaxResumeChars is the character budget for resume text embedded in a
// prompt. Free models have context limits, though the intern model is
// generous.
const MaxResumeChars = 15000

// promptFile is the embedded template file for all coaching prompts.
const promptFile = "coach.json"

// Prompt is a system/user prompt pair ready for the gateway. Builders are
// pure: they never perform I/O and never fail.
type Prompt struct {
	System string
	User   string
}

// TruncateResume caps extracted resume text at MaxResumeChars characters.
func TruncateResume(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxResumeChars {
		return text
	}
	return string(runes[:MaxResumeChars])
}

// ResumeParse builds the structured-extraction prompt for raw resume text.
// The text is truncated to MaxResumeChars before embedding.
func ResumeParse(extractedText string) Prompt {
	return Prompt{
		System: MustGet(promptFile, "resume_parse_system"),
		User: Format(MustGet(promptFile, "resume_parse_user"), map[string]string{
			"ResumeText": TruncateResume(extractedText),
		}),
	}
}

// AnalyzeProfile builds the identity-inference and summary prompt.
func AnalyzeProfile(profile *types.UserProfile) Prompt {
	universityOrRole := profile.University
	if universityOrRole == "" {
		universityOrRole = profile.Role
	}

	return Prompt{
		System: MustGet(promptFile, "analyze_profile_system"),
		User: Format(MustGet(promptFile, "analyze_profile_user"), map[string]string{
			"Persona":          string(profile.Persona),
			"UniversityOrRole": universityOrRole,
			"Skills":           strings.Join(profile.Skills, ", "),
			"GitHub":           orSentinel(profile.Socials.GitHub, "N/A"),
			"LinkedIn":         orSentinel(profile.Socials.LinkedIn, "N/A"),
			"Achievements":     orSentinel(profile.Achievements, "None provided"),
		}),
	}
}

// GenerateRoadmap builds the gap-analysis and roadmap prompt for a target
// goal.
func GenerateRoadmap(profile *types.UserProfile, goal string) Prompt {
	return Prompt{
		System: MustGet(promptFile, "roadmap_system"),
		User: Format(MustGet(promptFile, "roadmap_user"), map[string]string{
			"RoleLabel": roleLabel(profile),
			"YearsExp":  strconv.Itoa(profile.YearsOfExperience),
			"Skills":    strings.Join(profile.Skills, ", "),
			"Goal":      goal,
		}),
	}
}

// GeneratePathway builds the scored gap-analysis variant. An empty goal
// defaults to the profile's role, then to "Software Engineer".
func GeneratePathway(profile *types.UserProfile, goal string) Prompt {
	if goal == "" {
		goal = profile.Role
	}
	if goal == "" {
		goal = "Software Engineer"
	}

	return Prompt{
		System: MustGet(promptFile, "pathway_system"),
		User: Format(MustGet(promptFile, "pathway_user"), map[string]string{
			"Goal":       goal,
			"Skills":     strings.Join(profile.Skills, ", "),
			"YearsExp":   strconv.Itoa(profile.YearsOfExperience),
			"University": profile.University,
			"GradYear":   profile.GradYear,
		}),
	}
}

// roleLabel describes the candidate's current position for the prompt.
func roleLabel(profile *types.UserProfile) string {
	if profile.Persona == types.PersonaStudent {
		return profile.University + " Student"
	}
	return profile.Role
}

func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}
