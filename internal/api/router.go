package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/preview"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, previews *preview.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, previews)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Preview rendering.
	r.Get("/preview/records/*", h.PreviewRecord)
	r.Get("/preview/link", h.PreviewLink)

	// Raw records.
	r.Get("/records", h.ListRecords)
	r.Get("/records/*", h.GetRecord)

	// Cache management.
	r.Delete("/cache/records", h.ClearRecordCache)
	r.Delete("/cache/records/*", h.ClearRecordCache)
	r.Delete("/cache/links", h.ClearLinkCache)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
