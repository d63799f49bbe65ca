package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omchoksi/talentscout/internal/config"
	"github.com/omchoksi/talentscout/internal/conversation"
	"github.com/omchoksi/talentscout/internal/db"
)

type fakeChat struct {
	lastSessionID string
	lastInput     string
	err           error
}

func (f *fakeChat) Chat(_ context.Context, sessionID, userInput string) (conversation.Result, error) {
	if f.err != nil {
		return conversation.Result{}, f.err
	}
	if sessionID == "" {
		sessionID = "generated-session"
	}
	f.lastSessionID = sessionID
	f.lastInput = userInput
	return conversation.Result{
		SessionID: sessionID,
		Response:  "Nice to meet you!",
		Fields:    conversation.Fields{Name: "Om Choksi"},
	}, nil
}

type fakeSessions struct {
	sessions map[string]*db.Session
	messages map[string][]db.Message
}

func (f *fakeSessions) GetSession(_ context.Context, sessionID string) (*db.Session, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeSessions) ListMessages(_ context.Context, sessionID string) ([]db.Message, error) {
	return f.messages[sessionID], nil
}

type fakeProfiles struct {
	profiles []db.CandidateProfile
	err      error
}

func (f *fakeProfiles) GetProfile(_ context.Context, sessionID string) (*db.CandidateProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.profiles {
		if f.profiles[i].SessionID == sessionID {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProfiles) ListProfiles(_ context.Context, _ int) ([]db.CandidateProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles, nil
}

func newTestServer(t *testing.T, chat ChatService, sessions SessionReader, profiles ProfileReader) *Server {
	t.Helper()
	if chat == nil {
		chat = &fakeChat{}
	}
	if sessions == nil {
		sessions = &fakeSessions{}
	}
	if profiles == nil {
		profiles = &fakeProfiles{}
	}

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	srv, err := New(Options{
		Port:     0,
		Chat:     chat,
		Sessions: sessions,
		Profiles: profiles,
		JWT:      jwtService,
	})
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat(t *testing.T) {
	chat := &fakeChat{}
	srv := newTestServer(t, chat, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat",
		ChatRequest{SessionID: "abc", UserInput: "Om Choksi"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionID)
	assert.Equal(t, "Nice to meet you!", resp.Response)
	assert.Equal(t, "Om Choksi", resp.UserDetails.Name)
	assert.Equal(t, "Om Choksi", chat.lastInput)
}

func TestHandleChat_EmptySessionStartsNew(t *testing.T) {
	srv := newTestServer(t, &fakeChat{}, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "generated-session", resp.SessionID)
}

func TestHandleChat_BadJSON(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_OversizedInput(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat",
		ChatRequest{UserInput: strings.Repeat("a", 5000)}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_ServiceError(t *testing.T) {
	srv := newTestServer(t, &fakeChat{err: fmt.Errorf("db down")}, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat",
		ChatRequest{UserInput: "hello"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGetSession(t *testing.T) {
	sessions := &fakeSessions{
		sessions: map[string]*db.Session{
			"abc": {
				SessionID: "abc",
				Fields:    conversation.Fields{Name: "Om Choksi"},
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		},
		messages: map[string][]db.Message{
			"abc": {
				{SessionID: "abc", Role: "user", Content: ""},
				{SessionID: "abc", Role: "assistant", Content: "Hello!"},
			},
		},
	}
	srv := newTestServer(t, nil, sessions, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/sessions/abc", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Om Choksi", resp.UserDetails.Name)
	assert.Len(t, resp.Messages, 2)
}

func TestHandleGetSession_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, &fakeSessions{}, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/sessions/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCandidates_RequireAuth(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/candidates", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates/abc", nil,
		map[string]string{"Authorization": "Bearer bogus"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCandidates_WithToken(t *testing.T) {
	profiles := &fakeProfiles{
		profiles: []db.CandidateProfile{
			{SessionID: "abc", Name: "Om Choksi", CompetencyLevel: "mid-level"},
			{SessionID: "def", Name: "Asha Rao", CompetencyLevel: "senior"},
		},
	}
	srv := newTestServer(t, nil, nil, profiles)

	token, err := srv.jwtService.GenerateToken("recruiter@example.com")
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/candidates", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Candidates []db.CandidateProfile `json:"candidates"`
		Count      int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates/abc", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile db.CandidateProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Om Choksi", profile.Name)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates/missing", nil, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandidates_BadLimit(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	token, err := srv.jwtService.GenerateToken("recruiter@example.com")
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/candidates?limit=zero", nil,
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatSetsRateLimitHeaders(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat",
		ChatRequest{UserInput: "hi"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestNew_MissingDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
