package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/omchoksi/talentscout/internal/conversation"
)

// Session is a stored chat session.
type Session struct {
	SessionID string              `json:"session_id"`
	Fields    conversation.Fields `json:"user_details"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Message is one transcript entry. Reads are ordered by creation time, which
// is the canonical transcript order.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LoadFields returns the collection progress for a session, or zero-value
// Fields when the session does not exist yet.
func (db *DB) LoadFields(ctx context.Context, sessionID string) (conversation.Fields, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_details FROM chat_sessions WHERE session_id = $1`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return conversation.Fields{}, nil
		}
		return conversation.Fields{}, fmt.Errorf("failed to load session fields: %w", err)
	}

	var fields conversation.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return conversation.Fields{}, fmt.Errorf("failed to decode session fields: %w", err)
	}
	return fields, nil
}

// SaveFields upserts the whole fields map for a session. The write is a full
// overwrite: last write wins.
func (db *DB) SaveFields(ctx context.Context, sessionID string, fields conversation.Fields) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode session fields: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO chat_sessions (session_id, user_details)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id) DO UPDATE SET user_details = $2, updated_at = NOW()`,
		sessionID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save session fields: %w", err)
	}
	return nil
}

// GetSession retrieves a stored session, or nil when it does not exist.
func (db *DB) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, user_details, created_at, updated_at
		 FROM chat_sessions WHERE session_id = $1`,
		sessionID,
	).Scan(&s.SessionID, &raw, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal(raw, &s.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode session fields: %w", err)
	}
	return &s, nil
}

// AppendMessage appends one transcript entry for the session.
func (db *DB) AppendMessage(ctx context.Context, sessionID, role, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO messages (session_id, role, content) VALUES ($1, $2, $3)`,
		sessionID, role, content,
	)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// CountMessages returns the number of transcript entries for the session.
func (db *DB) CountMessages(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE session_id = $1`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// ListMessages returns the session transcript in creation order.
func (db *DB) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM messages WHERE session_id = $1 ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}
