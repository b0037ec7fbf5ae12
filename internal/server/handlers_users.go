package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/auth"
	"github.com/Srujan0798/CareerMirror/internal/server/middleware"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// handleUpdateUser applies profile updates. Users may only update
// themselves; a mismatched path id is a plain 403.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "invalid user id"})
		return
	}
	if targetID != userID {
		writeError(w, auth.ErrForbidden)
		return
	}

	var upd types.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid request body"})
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleUpgradePlan transitions the user to a paid plan.
func (s *Server) handleUpgradePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "invalid user id"})
		return
	}
	if targetID != userID {
		writeError(w, auth.ErrForbidden)
		return
	}

	var req types.UpgradePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid request body"})
		return
	}

	user, err := s.userService.Upgrade(r.Context(), userID, req.Plan)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
