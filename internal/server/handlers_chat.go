package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Srujan0798/CareerMirror/internal/server/middleware"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// handleChat relays one interview turn to the counselor model.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserID(r); err != nil {
		writeError(w, err)
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, &ErrValidation{Field: "message", Message: "must not be empty"})
		return
	}

	reply := s.interviewer.Reply(r.Context(), req.History, req.Message)
	writeJSON(w, http.StatusOK, types.ChatResponse{Reply: reply})
}
