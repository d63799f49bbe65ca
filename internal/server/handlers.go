package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/omchoksi/talentscout/internal/conversation"
	"github.com/omchoksi/talentscout/internal/db"
)

// ChatRequest is one candidate utterance. An empty session_id starts a new
// session; an empty user_input is legal and yields the greeting on the first
// turn.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	UserInput string `json:"user_input" validate:"max=4000"`
}

// ChatResponse is the assistant's reply for one turn, with the collection
// progress so far.
type ChatResponse struct {
	SessionID   string              `json:"session_id"`
	Response    string              `json:"response"`
	UserDetails conversation.Fields `json:"user_details"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		verr := &ErrValidation{Field: "request", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	result, err := s.chat.Chat(r.Context(), req.SessionID, req.UserInput)
	if err != nil {
		s.log.Error("chat turn failed",
			zap.String("session_id", req.SessionID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to process message")
		return
	}

	s.jsonResponse(w, http.StatusOK, ChatResponse{
		SessionID:   result.SessionID,
		Response:    result.Response,
		UserDetails: result.Fields,
	})
}

// SessionResponse is a stored session with its transcript.
type SessionResponse struct {
	SessionID   string              `json:"session_id"`
	UserDetails conversation.Fields `json:"user_details"`
	Messages    []db.Message        `json:"messages"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	session, err := s.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		nf := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	messages, err := s.sessions.ListMessages(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID:   session.SessionID,
		UserDetails: session.Fields,
		Messages:    messages,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	})
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	profiles, err := s.profiles.ListProfiles(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidates": profiles,
		"count":      len(profiles),
	})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	profile, err := s.profiles.GetProfile(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		nf := &ErrProfileNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
