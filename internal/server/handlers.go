package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jobfit-ai/matchmaker/internal/matching"
)

// handleAnalyzeJob extracts structured requirements from a job description
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req matching.AnalyzeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, errorEnvelope{Error: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, err)
		return
	}

	requirements, err := s.matcher.AnalyzeJob(r.Context(), req.JobDescription)
	if err != nil {
		s.logger.Error("job analysis failed", zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, requirements)
}

// handleMatchResumes runs the full matching pipeline
func (s *Server) handleMatchResumes(w http.ResponseWriter, r *http.Request) {
	var req matching.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, errorEnvelope{Error: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, err)
		return
	}

	response, err := s.matcher.MatchResumes(r.Context(), req.JobDescription, req.MatchingOptions)
	if err != nil {
		s.logger.Error("matching failed", zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, response)
}
