// Package parser extracts the property map and text blocks from Markdown
// vault pages. Properties come from YAML frontmatter and from Logseq-style
// `key:: value` lines; everything else becomes content blocks.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/laguz/internal/models"
)

var inlinePropRe = regexp.MustCompile(`^([a-zA-Z-]+)::\s*(.*)$`)

// Result holds the output of parsing a Markdown vault page.
type Result struct {
	Properties map[string]any
	Blocks     []models.Block
	Aliases    []string
}

// Parse extracts properties and blocks from raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	props := fm
	if props == nil {
		props = map[string]any{}
	}

	body = extractInlineProperties(body, props)
	blocks := splitBlocks(body)
	aliases := extractAliases(props)

	return &Result{
		Properties: props,
		Blocks:     blocks,
		Aliases:    aliases,
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]any, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	// Find end delimiter.
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	// Body starts after closing delimiter line.
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML: return body only, no error.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// extractInlineProperties pulls `key:: value` lines out of the body and merges
// them into props (frontmatter wins on key collision). Returns the body with
// those lines removed.
func extractInlineProperties(body string, props map[string]any) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		stripped := strings.TrimPrefix(strings.TrimSpace(line), "- ")
		if m := inlinePropRe.FindStringSubmatch(stripped); m != nil {
			key := m[1]
			if _, exists := props[key]; !exists {
				props[key] = parseInlineValue(m[2])
			}
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// parseInlineValue splits comma-separated inline values into a slice,
// leaving single values as plain strings.
func parseInlineValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, ",") {
		return raw
	}
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// splitBlocks turns the body into flat content blocks. Top-level bullets and
// paragraphs each become one block; blank lines separate paragraphs.
func splitBlocks(body string) []models.Block {
	var blocks []models.Block
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			blocks = append(blocks, models.Block{Content: text})
		}
		current = nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "- ") {
			flush()
			current = append(current, strings.TrimPrefix(trimmed, "- "))
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// extractAliases reads the alias property, which may be a string or a list.
func extractAliases(props map[string]any) []string {
	raw, ok := props["alias"]
	if !ok {
		return nil
	}
	var out []string
	switch v := raw.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
