// Package record implements the cached record store that feeds hover
// previews. It wraps the host's record access behind a TTL cache with
// case-insensitive keys and a one-hop alias-resolution fallback.
package record

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/laguz/internal/cache"
	"github.com/starford/laguz/internal/models"
)

// DefaultTTL is how long a fetched record stays fresh.
const DefaultTTL = 30 * time.Second

// Source is the host boundary the store fetches through. Implementations
// may fail or return nil; the store treats both as "no record".
type Source interface {
	// FetchRecord returns the record for a name, or nil when the host has
	// no such record.
	FetchRecord(ctx context.Context, name string) (*models.Record, error)
	// FetchBlocks returns the child text blocks of a record.
	FetchBlocks(ctx context.Context, name string) ([]models.Block, error)
	// ResolveAlias traverses the alias relation one hop and returns the
	// canonical record, or nil when name is not a registered alias.
	ResolveAlias(ctx context.Context, name string) (*models.Record, error)
}

// Store caches records fetched from a Source.
type Store struct {
	source Source
	cache  *cache.TTL[*models.Record]
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}

// WithNowFunc overrides the cache time source, for tests.
func WithNowFunc(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// NewStore creates a record store over the given source.
func NewStore(source Source, opts ...StoreOption) *Store {
	cfg := storeConfig{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		source: source,
		cache:  cache.New(cfg.ttl, cache.WithNowFunc[*models.Record](cfg.now)),
		logger: cfg.logger,
	}
}

// GetOptions controls a single Get call.
type GetOptions struct {
	// SkipCache forces a refetch from the source.
	SkipCache bool
}

// Get returns the record for name, or nil when the host has none or the
// fetch failed. Errors never escape: they are logged and collapsed to nil.
// Absence is not memoized; records can be created at any time.
func (s *Store) Get(ctx context.Context, name string, opts GetOptions) *models.Record {
	key := strings.ToLower(name)

	if !opts.SkipCache {
		if rec, ok := s.cache.Get(key); ok {
			return rec
		}
	}

	rec, err := s.source.FetchRecord(ctx, name)
	if err != nil {
		s.logger.Warn("record: fetch failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return nil
	}
	if rec == nil {
		return nil
	}

	rec = s.resolveAliasStub(ctx, name, rec)

	s.cache.Set(key, rec)
	return rec
}

// Blocks returns the child text blocks for a record. Blocks are fetched
// fresh on every call and never cached; failures collapse to nil.
func (s *Store) Blocks(ctx context.Context, name string) []models.Block {
	blocks, err := s.source.FetchBlocks(ctx, name)
	if err != nil {
		s.logger.Warn("record: fetch blocks failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return nil
	}
	return blocks
}

// resolveAliasStub handles records with an empty property map, which may be
// alias stubs pointing at a canonical record. Resolution failures are
// swallowed: the stub is returned unchanged.
//
// An empty property map can also mean a legitimately empty record; the
// trigger condition is deliberately left as-is.
func (s *Store) resolveAliasStub(ctx context.Context, name string, rec *models.Record) *models.Record {
	if len(rec.Properties) != 0 {
		return rec
	}

	resolved, err := s.source.ResolveAlias(ctx, name)
	if err != nil {
		s.logger.Debug("record: alias resolution failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return rec
	}
	if resolved == nil {
		return rec
	}

	return &models.Record{
		Name:         resolved.Name,
		ResolvedName: resolved.Name,
		Properties:   resolved.Properties,
		Blocks:       resolved.Blocks,
	}
}

// Clear drops the cache entry for name (case-insensitive).
func (s *Store) Clear(name string) {
	s.cache.Delete(strings.ToLower(name))
}

// ClearAll drops every cache entry.
func (s *Store) ClearAll() {
	s.cache.Clear()
}

// CacheLen reports the number of cached entries, for diagnostics.
func (s *Store) CacheLen() int {
	return s.cache.Len()
}
