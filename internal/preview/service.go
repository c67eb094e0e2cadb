// Package preview composes the record store, metadata fetcher, layout
// inference, and renderer into the two popover content pipelines: record
// previews and external-link previews.
package preview

import (
	"context"
	"log/slog"

	"github.com/starford/laguz/internal/content"
	"github.com/starford/laguz/internal/display"
	"github.com/starford/laguz/internal/hover"
	"github.com/starford/laguz/internal/linkmeta"
	"github.com/starford/laguz/internal/record"
)

// Service builds popover content. Fetch failures collapse to "no
// preview"; the link pipeline additionally surfaces stable HTTP errors
// inside the preview body.
type Service struct {
	records *record.Store
	links   *linkmeta.Fetcher
	logger  *slog.Logger
}

// NewService creates a preview service.
func NewService(records *record.Store, links *linkmeta.Fetcher, logger *slog.Logger) *Service {
	return &Service{records: records, links: links, logger: logger}
}

// Record renders the preview tree for a record name. Returns false when
// the record does not exist or its fetch failed.
func (s *Service) Record(ctx context.Context, name string) (content.Tree, bool) {
	rec := s.records.Get(ctx, name, record.GetOptions{})
	if rec == nil {
		return content.Tree{}, false
	}

	cfg := display.Resolve(rec)
	if cfg.ShowSnippet && len(rec.Blocks) == 0 {
		// Cached records are immutable; render from a copy with blocks.
		if blocks := s.records.Blocks(ctx, rec.Name); len(blocks) > 0 {
			withBlocks := *rec
			withBlocks.Blocks = blocks
			rec = &withBlocks
		}
	}

	return content.Render(rec, cfg), true
}

// Link renders the preview for an external URL. Returns false on a
// transient failure or back-off; an HTTP error status still yields a
// preview carrying the error message.
func (s *Service) Link(ctx context.Context, rawURL string) (content.LinkPreview, bool) {
	meta, err := s.links.Fetch(ctx, rawURL)
	if err != nil {
		s.logger.Debug("preview: link metadata unavailable",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		return content.LinkPreview{}, false
	}
	return content.RenderLink(meta), true
}

// InvalidateRecord drops one record from the preview cache.
func (s *Service) InvalidateRecord(name string) {
	s.records.Clear(name)
}

// InvalidateRecords drops the whole record cache.
func (s *Service) InvalidateRecords() {
	s.records.ClearAll()
}

// InvalidateLinks drops the link metadata caches.
func (s *Service) InvalidateLinks() {
	s.links.ClearCache()
}

// recordProvider adapts the record pipeline to the hover controller.
type recordProvider struct {
	svc *Service
}

func (p recordProvider) Resolve(ctx context.Context, anchor hover.Anchor) (content.Tree, bool) {
	return p.svc.Record(ctx, anchor.Key())
}

// RecordProvider returns the hover content provider for record anchors.
func (s *Service) RecordProvider() hover.Provider[content.Tree] {
	return recordProvider{svc: s}
}

// linkProvider adapts the link pipeline to the hover controller.
type linkProvider struct {
	svc *Service
}

func (p linkProvider) Resolve(ctx context.Context, anchor hover.Anchor) (content.LinkPreview, bool) {
	return p.svc.Link(ctx, anchor.Key())
}

// LinkProvider returns the hover content provider for external-link
// anchors.
func (s *Service) LinkProvider() hover.Provider[content.LinkPreview] {
	return linkProvider{svc: s}
}
