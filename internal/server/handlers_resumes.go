package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/server/middleware"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// handleListResumes returns the caller's active resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resumes, err := s.resumeService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumes)
}

// handleGetResume returns one resume, including soft-deleted ones the
// caller owns.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "invalid resume id"})
		return
	}

	resume, err := s.resumeService.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

// handleCreateResume generates the documents from the supplied
// transcript (or persists a pre-generated output) as a new resume.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid request body"})
		return
	}

	resume, err := s.resumeService.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

// handleUpdateResume applies partial updates to an owned, active
// resume.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "invalid resume id"})
		return
	}

	var upd types.ResumeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid request body"})
		return
	}

	resume, err := s.resumeService.Update(r.Context(), userID, id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

// handleDeleteResume soft-deletes an owned, active resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "invalid resume id"})
		return
	}

	if err := s.resumeService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "resume deleted"})
}
