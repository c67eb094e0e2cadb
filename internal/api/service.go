package api

import (
	"context"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/record"
)

// Service coordinates the record store and index for the API layer.
type Service struct {
	records *record.Store
	db      index.RecordIndex
}

// NewService creates a new API service.
func NewService(records *record.Store, db index.RecordIndex) *Service {
	return &Service{records: records, db: db}
}

// GetRecord returns the raw record with its blocks.
func (s *Service) GetRecord(ctx context.Context, name string) (*RecordDetail, error) {
	rec := s.records.Get(ctx, name, record.GetOptions{})
	if rec == nil {
		return nil, apperr.ErrNotFound
	}
	return &RecordDetail{
		Name:       rec.Name,
		Properties: rec.Properties,
		Blocks:     s.records.Blocks(ctx, rec.Name),
	}, nil
}

// ListRecords returns every indexed record name.
func (s *Service) ListRecords(_ context.Context) ([]string, error) {
	names, err := s.db.ListRecords()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ClearRecordCache drops one record from the preview cache, or all of
// them when name is empty.
func (s *Service) ClearRecordCache(name string) {
	if name == "" {
		s.records.ClearAll()
		return
	}
	s.records.Clear(name)
}
