// Package session identifies anonymous visitors with a long-lived client id
// cookie. Per-visitor state (browse state, annotations, chat transcripts) is
// keyed by this id.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the name of the client id cookie.
const CookieName = "reader_client"

const cookieMaxAge = 365 * 24 * time.Hour

type ctxKey struct{}

// Middleware ensures every request carries a client id, issuing a new cookie
// when the request has none (or an unparseable one).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
	})
}

// WithClientID returns a copy of ctx carrying id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ClientID returns the client id stored in ctx, or "anonymous" when the
// request did not pass through Middleware.
func ClientID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}
