package index

import (
	"log/slog"
	"time"

	"github.com/starford/laguz/internal/checksum"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/vault"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed pages are parsed and upserted
//   - pages removed from disk are deleted from the index
func Sync(db *DB, store vault.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexPage(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteByPath(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexPage parses data and upserts it into the DB.
func indexPage(db *DB, path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}

	row := RecordRow{
		Name:       vault.RecordName(path),
		Path:       path,
		Properties: res.Properties,
		Checksum:   checksum.Sum(data),
		UpdatedAt:  time.Now(),
	}
	return db.UpsertRecord(row, res.Aliases)
}
