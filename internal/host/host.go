// Package host adapts the vault and index into the record source the
// preview engine fetches through.
package host

import (
	"context"

	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/vault"
)

// Vault is the record source backed by the on-disk vault and its SQLite
// index. Record lookups hit the index; block content is read and parsed
// from disk on demand.
type Vault struct {
	db    index.RecordIndex
	store vault.Provider
}

// NewVault creates a vault-backed record source.
func NewVault(db index.RecordIndex, store vault.Provider) *Vault {
	return &Vault{db: db, store: store}
}

// FetchRecord looks up a record by name, case-insensitively. Returns nil
// when no record is indexed under that name.
func (v *Vault) FetchRecord(_ context.Context, name string) (*models.Record, error) {
	row, err := v.db.GetRecord(name)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return &models.Record{
		Name:         row.Name,
		ResolvedName: row.Name,
		Properties:   row.Properties,
	}, nil
}

// FetchBlocks reads the record's file and returns its parsed text blocks.
// A name with no record yields nil, nil.
func (v *Vault) FetchBlocks(_ context.Context, name string) ([]models.Block, error) {
	row, err := v.db.GetRecord(name)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	data, err := v.store.Read(row.Path)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return res.Blocks, nil
}

// ResolveAlias traverses the alias relation one hop and returns the
// canonical record, or nil when name is not a registered alias.
func (v *Vault) ResolveAlias(ctx context.Context, name string) (*models.Record, error) {
	target, err := v.db.ResolveAlias(name)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, nil
	}
	return v.FetchRecord(ctx, target)
}
