package props

import (
	"strings"

	"github.com/starford/laguz/internal/models"
)

// SnippetMaxLength caps the length of a free-text snippet.
const SnippetMaxLength = 560

// Snippet extracts display text from a record's blocks: each block is
// cleaned, empty blocks are skipped, and the parts are joined with
// single spaces. Text over the limit is truncated at the nearest
// preceding word boundary (hard cut when the boundary falls before 60%
// of the limit) and suffixed with an ellipsis.
func Snippet(blocks []models.Block, maxLength int) string {
	if len(blocks) == 0 {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		if cleaned := CleanBlock(b.Content); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	joined := strings.Join(parts, " ")
	runes := []rune(joined)
	if len(runes) <= maxLength {
		return joined
	}

	truncated := string(runes[:maxLength])
	cutoff := len(truncated)
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)*6/10 {
		cutoff = lastSpace
	}
	return truncated[:cutoff] + "…"
}
