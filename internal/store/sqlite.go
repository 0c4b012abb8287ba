package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/printdesk/printdesk/internal/domain"
)

// SQLiteSessionStore implements chat.SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db *DB
}

// NewSQLiteSessionStore creates a session store using the given database.
func NewSQLiteSessionStore(db *DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// Get returns a session by ID, or nil when it does not exist.
func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var sess domain.Session
	var contextJSON, createdAt, updatedAt string

	err := s.db.sql.QueryRowContext(ctx,
		`SELECT id, context, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &contextJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(contextJSON), &sess.Context); err != nil {
		return nil, fmt.Errorf("decoding session %s context: %w", id, err)
	}
	sess.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)

	sess.Messages, err = s.loadMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Put saves a session and its full message history. The history is small
// (the orchestrator trims it each turn), so messages are rewritten whole.
func (s *SQLiteSessionStore) Put(ctx context.Context, sess *domain.Session) error {
	contextJSON, err := json.Marshal(sess.Context)
	if err != nil {
		return fmt.Errorf("encoding session context: %w", err)
	}

	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, context, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET context = excluded.context, updated_at = excluded.updated_at`,
		sess.ID, string(contextJSON),
		sess.CreatedAt.Format(time.DateTime), sess.UpdatedAt.Format(time.DateTime),
	); err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clearing session %s messages: %w", sess.ID, err)
	}
	for _, msg := range sess.Messages {
		var richJSON sql.NullString
		if msg.RichData != nil {
			if data, err := json.Marshal(msg.RichData); err == nil {
				richJSON = sql.NullString{String: string(data), Valid: true}
			}
		}
		ts := msg.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (session_id, msg_id, role, content, rich_data, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sess.ID, msg.ID, msg.Role, msg.Content, richJSON, ts.Format(time.DateTime),
		); err != nil {
			return fmt.Errorf("saving session %s message: %w", sess.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes a session and its messages.
func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.sql.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// List returns all session IDs, most recently updated first.
func (s *SQLiteSessionStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.sql.QueryContext(ctx, `SELECT id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteSessionStore) loadMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT msg_id, role, content, rich_data, timestamp
		 FROM messages WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading session %s messages: %w", sessionID, err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var ts string
		var richJSON sql.NullString

		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &richJSON, &ts); err != nil {
			return nil, err
		}
		msg.Timestamp, _ = time.Parse(time.DateTime, ts)
		if richJSON.Valid {
			var rich domain.RichMessageData
			if err := json.Unmarshal([]byte(richJSON.String), &rich); err == nil {
				msg.RichData = &rich
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}
