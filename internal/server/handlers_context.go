package server

import (
	"encoding/json"
	"net/http"

	"github.com/gapdebug/gapdebug/internal/types"
)

// ---------------------------------------------------------------------
// Skill Handlers
// ---------------------------------------------------------------------

type addSkillRequest struct {
	Name       string              `json:"name"`
	Category   types.SkillCategory `json:"category"`
	Confidence int                 `json:"confidence"`
}

type hydrateSkillsRequest struct {
	Skills []string `json:"skills"`
}

func (s *Server) handleListSkills(w http.ResponseWriter, _ *http.Request) {
	s.success(w, s.liveCtx.Skills())
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req addSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		s.failure(w, http.StatusBadRequest, "Skill name is required")
		return
	}

	node := s.liveCtx.AddSkill(req.Name, req.Category, req.Confidence)
	s.success(w, node)
}

func (s *Server) handleHydrateSkills(w http.ResponseWriter, r *http.Request) {
	var req hydrateSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Skills) == 0 {
		s.failure(w, http.StatusBadRequest, "Skill list is required")
		return
	}

	s.success(w, s.liveCtx.HydrateSkills(req.Skills))
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var update types.SkillUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	node, ok := s.liveCtx.UpdateSkill(id, update)
	if !ok {
		s.failure(w, http.StatusNotFound, "Skill not found")
		return
	}
	s.success(w, node)
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	s.liveCtx.RemoveSkill(r.PathValue("id"))
	s.success(w, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Achievement Handlers
// ---------------------------------------------------------------------

type addAchievementRequest struct {
	RawText       string   `json:"rawText"`
	RefinedText   string   `json:"refinedText"`
	RelatedSkills []string `json:"relatedSkills"`
	AITags        []string `json:"aiTags"`
}

func (s *Server) handleListAchievements(w http.ResponseWriter, _ *http.Request) {
	s.success(w, s.liveCtx.Achievements())
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	var req addAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RawText == "" {
		s.failure(w, http.StatusBadRequest, "Achievement text is required")
		return
	}
	// Simplest refinement policy: a bulleted restatement of the raw note
	if req.RefinedText == "" {
		req.RefinedText = "• " + req.RawText
	}

	entry := s.liveCtx.AddAchievement(req.RawText, req.RefinedText, req.RelatedSkills, req.AITags)
	s.success(w, entry)
}

func (s *Server) handleRemoveAchievement(w http.ResponseWriter, r *http.Request) {
	s.liveCtx.RemoveAchievement(r.PathValue("id"))
	s.success(w, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Profile Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Load()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if profile == nil {
		s.failure(w, http.StatusNotFound, "No profile saved")
		return
	}
	s.success(w, profile)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if profile.Persona == "" {
		s.failure(w, http.StatusBadRequest, "Profile persona is required")
		return
	}

	if err := s.profiles.Save(&profile); err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, map[string]string{"status": "saved"})
}
