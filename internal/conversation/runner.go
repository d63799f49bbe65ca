package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore is the durable mapping from session ID to collection progress
// and transcript. Load returns zero-value Fields for an unknown session; Save
// is a full overwrite of the whole fields map, last write wins.
type SessionStore interface {
	LoadFields(ctx context.Context, sessionID string) (Fields, error)
	SaveFields(ctx context.Context, sessionID string, fields Fields) error
	AppendMessage(ctx context.Context, sessionID, role, content string) error
	CountMessages(ctx context.Context, sessionID string) (int, error)
}

// ProfileSink receives the derived candidate profile. Writes are fire and
// forget from the conversation's perspective.
type ProfileSink interface {
	SaveProfile(ctx context.Context, profile Profile) error
}

// PhrasingGenerator renders an instruction into natural language. It must
// never fail past this boundary: any internal error yields the fallback text.
type PhrasingGenerator interface {
	Generate(ctx context.Context, instruction string, maxTokens int, fallback string) string
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Result is the outcome of one chat turn.
type Result struct {
	SessionID string
	Response  string
	Fields    Fields
}

// Runner executes chat turns: it serializes access per session, loads the
// collection progress, advances the state machine, renders the reply, and
// persists the outcome.
type Runner struct {
	machine  *Machine
	store    SessionStore
	profiles ProfileSink
	phraser  PhrasingGenerator
	log      *zap.Logger
	locks    keyedLocks
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(machine *Machine, store SessionStore, profiles ProfileSink, phraser PhrasingGenerator, log *zap.Logger) *Runner {
	return &Runner{
		machine:  machine,
		store:    store,
		profiles: profiles,
		phraser:  phraser,
		log:      log,
	}
}

// Chat runs one turn for the session. An empty sessionID starts a fresh
// session under a new identifier. Store failures propagate; phrasing and
// profile failures never do.
func (r *Runner) Chat(ctx context.Context, sessionID, userInput string) (Result, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// The store's read-modify-write is not atomic, so two concurrent turns
	// for one session would race on stale fields. Serializing per session
	// closes that window within this process.
	unlock := r.locks.acquire(sessionID)
	defer unlock()

	fields, err := r.store.LoadFields(ctx, sessionID)
	if err != nil {
		return Result{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	messageCount, err := r.store.CountMessages(ctx, sessionID)
	if err != nil {
		return Result{}, fmt.Errorf("count messages for session %s: %w", sessionID, err)
	}

	turn := r.machine.Advance(fields, userInput, messageCount)

	response := turn.Prompt.Fallback
	if turn.Prompt.Instruction != "" {
		response = r.phraser.Generate(ctx, turn.Prompt.Instruction, turn.Prompt.MaxTokens, turn.Prompt.Fallback)
	}

	if turn.ProfileReady {
		profile := BuildProfile(sessionID, turn.Fields)
		if err := r.profiles.SaveProfile(ctx, profile); err != nil {
			// Best effort: the candidate-facing turn must not fail on this.
			r.log.Error("failed to save candidate profile",
				zap.String("session_id", sessionID), zap.Error(err))
		} else {
			r.log.Info("candidate profile saved",
				zap.String("session_id", sessionID),
				zap.String("competency_level", string(profile.CompetencyLevel)))
		}
	}

	if err := r.store.SaveFields(ctx, sessionID, turn.Fields); err != nil {
		return Result{}, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	if err := r.store.AppendMessage(ctx, sessionID, RoleUser, userInput); err != nil {
		return Result{}, fmt.Errorf("append user message: %w", err)
	}
	if err := r.store.AppendMessage(ctx, sessionID, RoleAssistant, response); err != nil {
		return Result{}, fmt.Errorf("append assistant message: %w", err)
	}

	return Result{SessionID: sessionID, Response: response, Fields: turn.Fields}, nil
}
