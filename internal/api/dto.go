package api

import (
	"github.com/starford/laguz/internal/content"
	"github.com/starford/laguz/internal/models"
)

// RecordPreview is the response payload for a record preview.
type RecordPreview = content.Tree

// LinkPreview is the response payload for an external-link preview.
type LinkPreview = content.LinkPreview

// RecordDetail is the raw record response.
type RecordDetail struct {
	Name       string         `json:"name" validate:"required"`
	Properties map[string]any `json:"properties" validate:"required"`
	Blocks     []models.Block `json:"blocks,omitempty"`
}

// RecordListResponse wraps record name listings.
type RecordListResponse struct {
	Records []string `json:"records" validate:"required"`
	Total   int      `json:"total" example:"42" validate:"required"`
}
