package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/preview"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *Service
	previews *preview.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service, previews *preview.Service) *Handler {
	return &Handler{svc: svc, previews: previews}
}

// recordName extracts the record name from the URL (everything after the
// route prefix). Supports encoded characters from API clients.
func recordName(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// PreviewRecord handles GET /api/preview/records/*.
//
//	@Summary		Render the hover preview for a record
//	@Tags			preview
//	@Produce		json
//	@Param			name	path		string	true	"Record name"
//	@Success		200		{object}	RecordPreview
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview/records/{name} [get]
func (h *Handler) PreviewRecord(w http.ResponseWriter, r *http.Request) {
	name := recordName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	tree, ok := h.previews.Record(r.Context(), name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// PreviewLink handles GET /api/preview/link.
//
//	@Summary		Render the hover preview for an external link
//	@Tags			preview
//	@Produce		json
//	@Param			url	query		string	true	"Link URL"
//	@Success		200	{object}	LinkPreview
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview/link [get]
func (h *Handler) PreviewLink(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'url' is required"))
		return
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		writeJSON(w, http.StatusBadRequest, errorBody("url must be http or https"))
		return
	}
	lp, ok := h.previews.Link(r.Context(), rawURL)
	if !ok {
		// Transient failure or back-off: no preview right now.
		writeJSON(w, http.StatusNotFound, errorBody("metadata unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, lp)
}

// GetRecord handles GET /api/records/*.
//
//	@Summary		Get a raw record by name
//	@Tags			records
//	@Produce		json
//	@Param			name	path		string	true	"Record name"
//	@Success		200		{object}	RecordDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/records/{name} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	name := recordName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	rec, err := h.svc.GetRecord(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get record failed", slog.String("name", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListRecords handles GET /api/records.
//
//	@Summary		List indexed record names
//	@Tags			records
//	@Produce		json
//	@Success		200	{object}	RecordListResponse
//	@Security		BearerAuth
//	@Router			/records [get]
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListRecords(r.Context())
	if err != nil {
		slog.Error("list records failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, RecordListResponse{Records: names, Total: len(names)})
}

// ClearRecordCache handles DELETE /api/cache/records and
// DELETE /api/cache/records/*.
//
//	@Summary		Clear the record preview cache
//	@Tags			cache
//	@Param			name	path	string	false	"Record name (omit to clear all)"
//	@Success		204		"Cache cleared"
//	@Security		BearerAuth
//	@Router			/cache/records/{name} [delete]
func (h *Handler) ClearRecordCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearRecordCache(recordName(r))
	w.WriteHeader(http.StatusNoContent)
}

// ClearLinkCache handles DELETE /api/cache/links.
//
//	@Summary		Clear the link metadata caches
//	@Tags			cache
//	@Success		204	"Cache cleared"
//	@Security		BearerAuth
//	@Router			/cache/links [delete]
func (h *Handler) ClearLinkCache(w http.ResponseWriter, _ *http.Request) {
	h.previews.InvalidateLinks()
	w.WriteHeader(http.StatusNoContent)
}
