package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RecordRow represents a row in the records table.
type RecordRow struct {
	Name       string
	Path       string
	Properties map[string]any
	Checksum   string
	UpdatedAt  time.Time
}

// UpsertRecord inserts or replaces a record and its alias edges within a
// transaction. The record is keyed by the lowercase of its name.
func (db *DB) UpsertRecord(r RecordRow, aliases []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	propsJSON, _ := json.Marshal(r.Properties)
	nameLC := strings.ToLower(r.Name)

	_, err = tx.Exec(`
		INSERT INTO records (name_lc, name, path, properties, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name_lc) DO UPDATE SET
			name       = excluded.name,
			path       = excluded.path,
			properties = excluded.properties,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, nameLC, r.Name, r.Path, string(propsJSON), r.Checksum, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert record: %w", err)
	}

	// Replace alias edges: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM aliases WHERE target_lc = ?`, nameLC)
	if len(aliases) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO aliases (alias_lc, target_lc) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare alias insert: %w", err)
		}
		defer stmt.Close()
		for _, alias := range aliases {
			if _, err := stmt.Exec(strings.ToLower(alias), nameLC); err != nil {
				return fmt.Errorf("index: insert alias: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteByPath removes the record stored at the given vault path and its
// alias edges. A path with no record is a no-op.
func (db *DB) DeleteByPath(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var nameLC string
	err = tx.QueryRow(`SELECT name_lc FROM records WHERE path = ?`, path).Scan(&nameLC)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("index: lookup by path: %w", err)
	}

	_, _ = tx.Exec(`DELETE FROM aliases WHERE target_lc = ?`, nameLC)
	_, _ = tx.Exec(`DELETE FROM records WHERE name_lc = ?`, nameLC)

	return tx.Commit()
}

// GetRecord returns the record for a name (case-insensitive), or nil when
// no such record is indexed.
func (db *DB) GetRecord(name string) (*RecordRow, error) {
	row := db.conn.QueryRow(`
		SELECT name, path, properties, checksum, updated_at
		FROM records WHERE name_lc = ?
	`, strings.ToLower(name))

	var r RecordRow
	var propsJSON string
	err := row.Scan(&r.Name, &r.Path, &propsJSON, &r.Checksum, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get record: %w", err)
	}
	if err := json.Unmarshal([]byte(propsJSON), &r.Properties); err != nil {
		return nil, fmt.Errorf("index: decode properties: %w", err)
	}
	return &r, nil
}

// NameForPath returns the record name stored at a vault path, or "" when
// the path is not indexed.
func (db *DB) NameForPath(path string) (string, error) {
	var name string
	err := db.conn.QueryRow(`SELECT name FROM records WHERE path = ?`, path).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: name for path: %w", err)
	}
	return name, nil
}

// ResolveAlias traverses the alias relation exactly one hop: if name is a
// registered alias of some record, that record's canonical name is returned.
// Returns "" when name is not an alias.
func (db *DB) ResolveAlias(name string) (string, error) {
	var target string
	err := db.conn.QueryRow(`
		SELECT r.name FROM aliases a
		JOIN records r ON r.name_lc = a.target_lc
		WHERE a.alias_lc = ?
	`, strings.ToLower(name)).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: resolve alias: %w", err)
	}
	return target, nil
}

// ListRecords returns every indexed record name in lexical order.
func (db *DB) ListRecords() ([]string, error) {
	rows, err := db.conn.Query(`SELECT name FROM records ORDER BY name_lc`)
	if err != nil {
		return nil, fmt.Errorf("index: list records: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed record.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM records`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
