package annotations

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/session"
)

// RegisterRoutes mounts the annotation API routes.
func RegisterRoutes(r chi.Router, store Store, logger *zap.Logger) {
	r.Route("/api/annotations", func(r chi.Router) {
		r.Get("/{set}", handleGet(store, logger))
		r.Post("/{set}/{docID}/toggle", handleToggle(store, logger))
	})
}

type setResponse struct {
	Set string   `json:"set"`
	IDs []string `json:"ids"`
}

type toggleResponse struct {
	Set    string `json:"set"`
	DocID  string `json:"doc_id"`
	Member bool   `json:"member"`
}

func handleGet(store Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := SetName(chi.URLParam(r, "set"))
		if !name.Valid() {
			writeError(w, http.StatusNotFound, "unknown annotation set")
			return
		}

		set, err := store.Get(r.Context(), session.ClientID(r.Context()), name)
		if err != nil {
			logger.Error("reading annotation set", zap.String("set", string(name)), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not read annotations")
			return
		}
		writeJSON(w, http.StatusOK, setResponse{Set: string(name), IDs: set.IDs()})
	}
}

func handleToggle(store Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := SetName(chi.URLParam(r, "set"))
		if !name.Valid() {
			writeError(w, http.StatusNotFound, "unknown annotation set")
			return
		}
		docID := chi.URLParam(r, "docID")

		member, err := store.Toggle(r.Context(), session.ClientID(r.Context()), name, docID)
		if err != nil {
			logger.Error("toggling annotation", zap.String("set", string(name)), zap.String("doc_id", docID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not update annotations")
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{Set: string(name), DocID: docID, Member: member})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
