package chat

import (
	"errors"
	"time"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fixed assistant texts.
const (
	Greeting     = "Hello! I can help you understand this research article better. Feel free to ask me any questions about the content, methodology, or findings."
	EmptyAnswer  = "I apologize, but I couldn't generate a response. Please try again."
	FailureReply = "Sorry, I encountered an error. Please make sure the backend is running and try again."
)

var (
	// ErrEmptyMessage is returned when the message is blank.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned while a previous message in the same chat is
	// still waiting for its answer.
	ErrBusy = errors.New("chat is waiting for a response")
	// ErrNoSession is returned when no chat was opened for the article.
	ErrNoSession = errors.New("no chat session for article")
)

// Session is one visitor's chat about one article.
type Session struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	ArticleURL     string    `json:"article_url"`
	ArticleTitle   string    `json:"article_title"`
	ArticleContext string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Message is one transcript entry. Transcripts are append-only.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is a session with its messages in order.
type Transcript struct {
	Session  Session   `json:"session"`
	Messages []Message `json:"messages"`
	Busy     bool      `json:"busy"`
}

// Article identifies the article a chat is about.
type Article struct {
	URL     string
	Title   string
	Context string
}
