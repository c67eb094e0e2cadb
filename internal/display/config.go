// Package display infers popover layout from a record's properties.
// Property names are classified into roles (subtitle, detail row, tag
// pill, photo, array group) using priority-ordered lists, so a new
// record type needs no configuration to get a sensible layout.
package display

import (
	"sort"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/props"
)

// Config is the inferred layout plan for one record. Computed fresh per
// render, never cached.
type Config struct {
	// SubtitleText is pre-resolved subtitle text, e.g. "Engineer at Acme".
	SubtitleText string
	// PhotoProperty names the property holding a photo URL, if present.
	PhotoProperty string
	// DetailProperties are shown as labeled key-value rows, in order.
	DetailProperties []string
	// ExtraTags are tag pill properties beyond type/status/area.
	ExtraTags []string
	// ArrayProperties are multi-value properties rendered as pill groups.
	ArrayProperties []string
	// ShowSnippet indicates a free-text snippet should be rendered.
	ShowSnippet bool
}

// Subtitle priority: the first property present on the record wins.
// role is special-cased to combine with organization.
var subtitlePriority = []string{"role", "cuisine", "author", "platform", "owner", "source", "date"}

// Detail row priority. Only properties present on the record appear,
// in this order.
var detailPriority = []string{
	"rating",
	"location",
	"address",
	"email",
	"phone",
	"genre",
	"cuisine",
	"repository",
	"source",
	"platform",
	"author",
	"owner",
	"date",
}

// tagProperties are rendered as extra tag pills beyond type/status/area.
var tagProperties = []string{"relationship", "initiative"}

// managedProperties get dedicated sections and never appear as detail
// rows or array pills.
var managedProperties = map[string]struct{}{
	"type":         {},
	"icon":         {},
	"status":       {},
	"area":         {},
	"description":  {},
	"created":      {},
	"url":          {},
	"photo":        {},
	"role":         {},
	"organization": {},
	"alias":        {},
}

// Resolve inspects a record's properties and returns the layout config
// driving the renderer. Pure function of the property map.
func Resolve(rec *models.Record) Config {
	pm := rec.Properties

	var cfg Config

	if present(pm, "photo") {
		cfg.PhotoProperty = "photo"
	}

	subtitle, consumed := resolveSubtitle(pm)
	cfg.SubtitleText = subtitle

	excluded := make(map[string]struct{}, len(managedProperties)+len(consumed)+len(tagProperties))
	for k := range managedProperties {
		excluded[k] = struct{}{}
	}
	for _, k := range consumed {
		excluded[k] = struct{}{}
	}
	for _, k := range tagProperties {
		excluded[k] = struct{}{}
	}

	detailSet := make(map[string]struct{})
	for _, p := range detailPriority {
		if _, skip := excluded[p]; skip {
			continue
		}
		if present(pm, p) {
			cfg.DetailProperties = append(cfg.DetailProperties, p)
			detailSet[p] = struct{}{}
		}
	}

	// Remaining multi-value properties become pill groups. Sorted for a
	// stable order across renders.
	for key, value := range pm {
		if _, skip := excluded[key]; skip {
			continue
		}
		if _, shown := detailSet[key]; shown {
			continue
		}
		if _, isArray := value.([]any); isArray {
			cfg.ArrayProperties = append(cfg.ArrayProperties, key)
		}
	}
	sort.Strings(cfg.ArrayProperties)

	for _, p := range tagProperties {
		if present(pm, p) {
			cfg.ExtraTags = append(cfg.ExtraTags, p)
		}
	}

	hasRichContent := len(cfg.DetailProperties) > 0 ||
		len(cfg.ArrayProperties) > 0 ||
		present(pm, "url")
	cfg.ShowSnippet = !hasRichContent

	return cfg
}

// resolveSubtitle walks the priority list and returns the subtitle text
// plus the property keys it consumed. role combines with organization as
// "Role at Org" when both exist.
func resolveSubtitle(pm map[string]any) (string, []string) {
	for _, prop := range subtitlePriority {
		if prop == "role" {
			var role, org string
			if present(pm, "role") {
				role = props.CleanValue(pm["role"])
			}
			if present(pm, "organization") {
				org = props.CleanValue(pm["organization"])
			}

			switch {
			case role != "" && org != "":
				return role + " at " + org, []string{"role", "organization"}
			case role != "":
				return role, []string{"role"}
			case org != "":
				return org, []string{"organization"}
			}
			continue
		}

		if present(pm, prop) {
			if text := props.CleanValue(pm[prop]); text != "" {
				return text, []string{prop}
			}
		}
	}
	return "", nil
}

// present reports whether a property exists with a non-empty value.
func present(pm map[string]any, key string) bool {
	v, ok := pm[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
