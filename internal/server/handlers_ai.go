package server

import (
	"encoding/json"
	"net/http"

	"github.com/gapdebug/gapdebug/internal/llm"
	"github.com/gapdebug/gapdebug/internal/prompts"
	"github.com/gapdebug/gapdebug/internal/schemas"
	"github.com/gapdebug/gapdebug/internal/types"
)

// parseResumeData is the success payload of POST /api/parse-resume.
type parseResumeData struct {
	URL        string          `json:"url"`
	ParsedData json.RawMessage `json:"parsedData"`
}

// handleParseResume extracts text from an uploaded resume and runs
// structured extraction through the intern model.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("resume")
	if err != nil {
		s.failure(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	text, err := s.extractor.ExtractText(r.Context(), file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p := prompts.ResumeParse(text)
	parsed, err := s.client.QueryJSON(r.Context(), s.models.GetModel(llm.RoleIntern), p.System, p.User)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := schemas.Validate(schemas.ParsedResume, parsed); err != nil {
		s.fail(w, r, err)
		return
	}

	s.success(w, parseResumeData{
		// TODO: replace with the real upload URL once resume storage lands
		URL:        "mock-url-for-now",
		ParsedData: parsed,
	})
}

// handleAnalyzeProfile runs identity inference and summary generation over an
// onboarding profile through the professor model.
func (s *Server) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Profile == nil {
		s.failure(w, http.StatusBadRequest, "Missing profile data")
		return
	}
	if err := req.Validate(); err != nil {
		logFailure(r, err)
		s.failure(w, http.StatusBadRequest, "Profile must include a persona and at least one skill")
		return
	}

	p := prompts.AnalyzeProfile(req.Profile)
	analysis, err := s.client.QueryJSON(r.Context(), s.models.GetModel(llm.RoleProfessor), p.System, p.User)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := schemas.Validate(schemas.ProfileAnalysis, analysis); err != nil {
		s.fail(w, r, err)
		return
	}

	s.success(w, json.RawMessage(analysis))
}

// handleGenerateRoadmap produces a skill-gap list and learning roadmap for an
// explicit target goal.
func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req types.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Profile == nil || req.Goal == "" {
		s.failure(w, http.StatusBadRequest, "Missing profile or goal data")
		return
	}
	if err := req.Validate(); err != nil {
		logFailure(r, err)
		s.failure(w, http.StatusBadRequest, "Profile must include a persona and at least one skill")
		return
	}

	p := prompts.GenerateRoadmap(req.Profile, req.Goal)
	roadmap, err := s.client.QueryJSON(r.Context(), s.models.GetModel(llm.RolePlanner), p.System, p.User)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := schemas.Validate(schemas.Roadmap, roadmap); err != nil {
		s.fail(w, r, err)
		return
	}

	s.success(w, json.RawMessage(roadmap))
}

// handleGeneratePathway produces the scored gap-analysis variant. The goal
// defaults to the profile's stored role.
func (s *Server) handleGeneratePathway(w http.ResponseWriter, r *http.Request) {
	var req types.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Profile == nil {
		s.failure(w, http.StatusBadRequest, "Missing profile data")
		return
	}
	if err := req.Validate(); err != nil {
		logFailure(r, err)
		s.failure(w, http.StatusBadRequest, "Profile must include a persona and at least one skill")
		return
	}

	p := prompts.GeneratePathway(req.Profile, req.Goal)
	pathway, err := s.client.QueryJSON(r.Context(), s.models.GetModel(llm.RolePlanner), p.System, p.User)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := schemas.Validate(schemas.Pathway, pathway); err != nil {
		s.fail(w, r, err)
		return
	}

	s.success(w, json.RawMessage(pathway))
}
