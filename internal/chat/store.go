package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/research-reader/internal/db"
)

// Store persists chat sessions and messages.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// OpenSession returns the client's session for the article, creating it on
// first use. The stored title and context are refreshed to the given values.
func (s *Store) OpenSession(ctx context.Context, clientID string, article Article) (*Session, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, client_id, article_url, article_title, article_context, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(client_id, article_url) DO UPDATE SET
		   article_title = excluded.article_title,
		   article_context = excluded.article_context`,
		uuid.New().String(), clientID, article.URL, article.Title, article.Context, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	return s.FindSession(ctx, clientID, article.URL)
}

// FindSession returns the client's session for articleURL, or ErrNoSession.
func (s *Store) FindSession(ctx context.Context, clientID, articleURL string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, article_url, article_title, article_context, created_at, updated_at
		 FROM chat_sessions WHERE client_id = ? AND article_url = ?`,
		clientID, articleURL,
	).Scan(&sess.ID, &sess.ClientID, &sess.ArticleURL, &sess.ArticleTitle, &sess.ArticleContext, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// AddMessage appends a message to a session and returns it with its
// sequence number assigned.
func (s *Store) AddMessage(ctx context.Context, sessionID string, role Role, content string) (*Message, error) {
	msg := Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE session_id = ?`, sessionID,
	).Scan(&msg.Seq); err != nil {
		return nil, fmt.Errorf("allocating sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, seq, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Seq, string(msg.Role), msg.Content, msg.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("adding message: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, msg.Timestamp, sessionID,
	); err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing message: %w", err)
	}
	return &msg, nil
}

// GetMessages returns all messages for a session in order.
func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, seq, role, content, created_at
		 FROM chat_messages WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		var role string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Seq, &role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Role = Role(role)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
