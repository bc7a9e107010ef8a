// Package chat implements the per-article Q&A widget: an append-only
// transcript per visitor and article, seeded with a greeting, whose
// questions are answered by the backend.
package chat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/backend"
)

// Asker answers a question about one article.
type Asker interface {
	AskArticle(ctx context.Context, req backend.ChatRequest) (string, error)
}

// Service coordinates transcripts and backend questions.
type Service struct {
	store  *Store
	asker  Asker
	logger *zap.Logger

	mu   sync.Mutex
	busy map[string]bool
}

// NewService creates a chat Service.
func NewService(store *Store, asker Asker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		asker:  asker,
		logger: logger,
		busy:   make(map[string]bool),
	}
}

// Open returns the client's transcript for an article, seeding a new one
// with the greeting.
func (s *Service) Open(ctx context.Context, clientID string, article Article) (*Transcript, error) {
	sess, err := s.store.OpenSession(ctx, clientID, article)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.GetMessages(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		greeting, err := s.store.AddMessage(ctx, sess.ID, RoleAssistant, Greeting)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *greeting)
	}
	return &Transcript{Session: *sess, Messages: msgs, Busy: s.isBusy(sess.ID)}, nil
}

// Transcript returns the client's existing transcript for articleURL.
func (s *Service) Transcript(ctx context.Context, clientID, articleURL string) (*Transcript, error) {
	sess, err := s.store.FindSession(ctx, clientID, articleURL)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.GetMessages(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return &Transcript{Session: *sess, Messages: msgs, Busy: s.isBusy(sess.ID)}, nil
}

// Send appends the visitor's message, asks the backend, and appends the
// assistant's reply, which is returned. Backend failures become the fixed
// apology rather than an error. The busy flag is always cleared.
func (s *Service) Send(ctx context.Context, clientID, articleURL, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	sess, err := s.store.FindSession(ctx, clientID, articleURL)
	if err != nil {
		return nil, err
	}

	if !s.acquire(sess.ID) {
		return nil, ErrBusy
	}
	defer s.release(sess.ID)

	if _, err := s.store.AddMessage(ctx, sess.ID, RoleUser, text); err != nil {
		return nil, err
	}

	reply := s.ask(ctx, sess, text)
	return s.store.AddMessage(ctx, sess.ID, RoleAssistant, reply)
}

func (s *Service) ask(ctx context.Context, sess *Session, question string) string {
	answer, err := s.asker.AskArticle(ctx, backend.ChatRequest{
		Question:       question,
		ArticleTitle:   sess.ArticleTitle,
		ArticleContext: sess.ArticleContext,
	})
	if err != nil {
		s.logger.Error("asking about article",
			zap.String("session_id", sess.ID),
			zap.String("article_url", sess.ArticleURL),
			zap.Error(err),
		)
		return FailureReply
	}
	if strings.TrimSpace(answer) == "" {
		return EmptyAnswer
	}
	return answer
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[sessionID] {
		return false
	}
	s.busy[sessionID] = true
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, sessionID)
}

func (s *Service) isBusy(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[sessionID]
}
