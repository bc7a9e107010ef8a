package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts upgrades without an Origin header (non-browser
// clients) or from a page served by this host. The transcript is keyed by
// the visitor cookie, so other sites must not open it.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	Type    string `json:"type"` // "message"
	Content string `json:"content"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Type     string    `json:"type"` // "response", "transcript" or "error"
	Message  *Message  `json:"message,omitempty"`
	Messages []Message `json:"messages,omitempty"`
	Content  string    `json:"content,omitempty"`
}

// RegisterRoutes mounts the chat form endpoint, websocket and JSON routes.
func RegisterRoutes(r chi.Router, svc *Service, logger *zap.Logger) {
	h := &handlers{svc: svc, logger: logger}
	r.Post("/article/chat", h.handleForm)
	r.Get("/ws/chat", h.handleWebSocket)
	r.Get("/api/chat/messages", h.handleMessages)
}

type handlers struct {
	svc    *Service
	logger *zap.Logger
}

// ArticleAnchor is the article page location of the chat widget.
func ArticleAnchor(articleURL string) string {
	return "/article?url=" + url.QueryEscape(articleURL) + "#chat"
}

// handleForm serves the no-script chat form. It always redirects back to
// the article page, which renders the updated transcript.
func (h *handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	articleURL := r.FormValue("url")
	if articleURL == "" {
		http.Error(w, "No URL provided", http.StatusBadRequest)
		return
	}

	_, err := h.svc.Send(r.Context(), session.ClientID(r.Context()), articleURL, r.FormValue("message"))
	switch {
	case err == nil, errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrBusy):
	default:
		h.logger.Error("sending chat message", zap.String("article_url", articleURL), zap.Error(err))
	}
	http.Redirect(w, r, ArticleAnchor(articleURL), http.StatusSeeOther)
}

func (h *handlers) handleMessages(w http.ResponseWriter, r *http.Request) {
	articleURL := r.URL.Query().Get("url")
	tr, err := h.svc.Transcript(r.Context(), session.ClientID(r.Context()), articleURL)
	if errors.Is(err, ErrNoSession) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no chat for this article"})
		return
	}
	if err != nil {
		h.logger.Error("reading transcript", zap.String("article_url", articleURL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not read chat"})
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (h *handlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	articleURL := r.URL.Query().Get("url")
	clientID := session.ClientID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	// Clear the deadlines inherited from the HTTP server's timeouts.
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	tr, err := h.svc.Transcript(r.Context(), clientID, articleURL)
	if err != nil {
		h.sendError(conn, "chat is not available for this article")
		return
	}
	h.send(conn, wsResponse{Type: "transcript", Messages: tr.Messages, Content: tr.Session.ArticleTitle})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.sendError(conn, "invalid message format")
			continue
		}
		if req.Type != "message" {
			h.sendError(conn, "unknown message type: "+req.Type)
			continue
		}

		reply, err := h.svc.Send(r.Context(), clientID, articleURL, req.Content)
		switch {
		case errors.Is(err, ErrEmptyMessage):
			h.sendError(conn, "content is required")
		case errors.Is(err, ErrBusy):
			h.sendError(conn, "please wait for the previous answer")
		case err != nil:
			h.logger.Error("sending chat message", zap.String("article_url", articleURL), zap.Error(err))
			h.sendError(conn, FailureReply)
		default:
			h.send(conn, wsResponse{Type: "response", Message: reply})
		}
	}
}

func (h *handlers) send(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Warn("websocket write", zap.Error(err))
	}
}

func (h *handlers) sendError(conn *websocket.Conn, message string) {
	h.send(conn, wsResponse{Type: "error", Content: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
