package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the HTML views, their form endpoints and the
// stylesheet.
func RegisterRoutes(r chi.Router, p *Pages) {
	r.Get("/static/style.css", serveCSS)

	r.Get("/", p.handleHome)
	r.Get("/home", p.handleHome)
	r.Get("/search", p.handleHome)

	r.Route("/topic/{id}", func(r chi.Router) {
		r.Get("/", p.handleTopic)
		r.Post("/favorite/{docID}", p.handleToggle)
		r.Post("/read/{docID}", p.handleToggle)
		r.Post("/open/{docID}", p.handleOpen)
	})

	r.Get("/article", p.handleArticle)

	r.NotFound(p.handleNotFound)
}

func serveCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(cssContent))
}
