// Package models defines the domain types for Laguz.
package models

import "time"

// Record is a named entity from the host vault: an open-ended property map
// plus optional child text blocks. Records are replaced wholesale on every
// refresh and never mutated in place.
type Record struct {
	// Name is the display name of the record. Never empty.
	Name string `json:"name"`
	// ResolvedName is the canonical name after alias resolution. Equal to
	// Name when the record is not an alias stub.
	ResolvedName string `json:"resolvedName"`
	// Properties is a free-form, case-sensitive key/value map. Values are
	// strings, slices of strings, or other scalars as parsed from the vault.
	Properties map[string]any `json:"properties"`
	// Blocks holds the record's child text blocks, when fetched.
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a unit of free-text content belonging to a record.
type Block struct {
	Content  string  `json:"content"`
	Children []Block `json:"children,omitempty"`
}

// LinkMetadata describes a remote page referenced by URL. Exactly one of
// (content fields populated) or (Error set) holds per fetch outcome.
type LinkMetadata struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Domain      string `json:"domain"`
	FaviconURL  string `json:"faviconUrl"`
	Error       string `json:"error,omitempty"`
}

// RecordMetadata is a lightweight representation returned by list operations.
type RecordMetadata struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
