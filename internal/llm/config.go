// Package llm provides the chat-completion gateway and centralized model
// configuration. This package enables per-task model selection with free-tier
// defaults and environment overrides.
package llm

import "os"

// ModelRole represents the task a model is assigned to.
type ModelRole string

const (
	// RoleIntern handles cheap, high-throughput extraction (resume parsing)
	RoleIntern ModelRole = "intern"
	// RoleProfessor handles reliability-oriented analysis (profile analysis)
	RoleProfessor ModelRole = "professor"
	// RolePlanner handles roadmap/pathway generation
	RolePlanner ModelRole = "planner"
)

// Environment variable names for per-role model overrides.
const (
	EnvModelIntern    = "MODEL_INTERN"
	EnvModelProfessor = "MODEL_PROFESSOR"
	EnvModelPlanner   = "MODEL_PLANNER"
)

// Config holds the model assignment for the application.
type Config struct {
	Models map[ModelRole]string
}

// DefaultConfig returns the free-tier default model assignment.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelRole]string{
			RoleIntern:    "qwen/qwen3-next-80b-a3b-instruct:free",
			RoleProfessor: "openai/gpt-oss-120b:free",
			RolePlanner:   "openai/gpt-oss-120b:free",
		},
	}
}

// ConfigFromEnv returns the default configuration with any per-role
// environment overrides applied.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	overrides := map[ModelRole]string{
		RoleIntern:    EnvModelIntern,
		RoleProfessor: EnvModelProfessor,
		RolePlanner:   EnvModelPlanner,
	}
	for role, env := range overrides {
		if v := os.Getenv(env); v != "" {
			cfg.Models[role] = v
		}
	}
	return cfg
}

// GetModel returns the model identifier for a given role.
func (c *Config) GetModel(role ModelRole) string {
	if model, ok := c.Models[role]; ok {
		return model
	}
	// Fallback chain: professor is the most dependable default
	if model, ok := c.Models[RoleProfessor]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a role.
func (c *Config) WithModel(role ModelRole, model string) *Config {
	newConfig := &Config{Models: make(map[ModelRole]string)}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[role] = model
	return newConfig
}
