package content

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/starford/laguz/internal/display"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/props"
)

const maxStars = 5

// Render builds the content tree for a record using its inferred layout.
// Section order is fixed; sections without content are omitted.
func Render(rec *models.Record, cfg display.Config) Tree {
	pm := rec.Properties

	tree := Tree{
		Header: buildHeader(rec, cfg),
	}

	if v, ok := pm["alias"]; ok {
		if aliases := props.CleanAll(v); len(aliases) > 0 {
			tree.Aliases = "aka " + strings.Join(aliases, " · ")
		}
	}

	if v, ok := pm["description"]; ok {
		tree.Description = props.CleanValue(v)
	}

	if cfg.ShowSnippet {
		tree.Snippet = props.Snippet(rec.Blocks, props.SnippetMaxLength)
	}

	for _, prop := range cfg.DetailProperties {
		v, ok := pm[prop]
		if !ok {
			continue
		}
		tree.Details = append(tree.Details, DetailRow{
			Label: capitalize(prop),
			Value: renderValue(prop, v),
		})
	}

	for _, prop := range cfg.ArrayProperties {
		pills := props.CleanAll(pm[prop])
		if len(pills) == 0 {
			continue
		}
		tree.ArrayGroups = append(tree.ArrayGroups, PillGroup{
			Property: prop,
			Pills:    pills,
		})
	}

	tree.Link = buildLink(pm, cfg)
	tree.Tags = buildTags(pm, cfg)

	return tree
}

func buildHeader(rec *models.Record, cfg display.Config) Header {
	h := Header{
		Title:    rec.Name,
		Subtitle: cfg.SubtitleText,
		Target:   rec.Name,
	}
	if icon := props.CleanValue(rec.Properties["icon"]); icon != "" {
		h.Title = icon + " " + rec.Name
	}
	if cfg.PhotoProperty != "" {
		h.PhotoURL = props.ExtractURL(rec.Properties[cfg.PhotoProperty])
	}
	return h
}

// renderValue formats a detail-row value based on the property name:
// rating becomes stars, email and phone become contact links, url and
// repository become clickable labels, anything else is plain text.
func renderValue(key string, value any) Value {
	cleaned := props.CleanValue(value)

	switch key {
	case "rating":
		return renderRating(value)

	case "email":
		return Value{Kind: ValueEmail, Text: cleaned, Href: "mailto:" + cleaned}

	case "phone":
		return Value{Kind: ValuePhone, Text: cleaned, Href: "tel:" + cleaned}

	case "url", "repository":
		if u := props.ExtractURL(value); u != "" {
			return Value{Kind: ValueLink, Text: props.FormatURLLabel(u), Href: u}
		}
		return Value{Kind: ValueText, Text: cleaned}

	default:
		return Value{Kind: ValueText, Text: cleaned}
	}
}

// renderRating turns a numeric value into star glyphs, e.g. 3 out of 5
// renders "★★★☆☆". Non-numeric values fall back to plain text.
func renderRating(value any) Value {
	cleaned := props.CleanValue(value)

	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Value{Kind: ValueText, Text: cleaned}
	}

	clamped := math.Max(0, math.Min(maxStars, num))
	full := int(math.Floor(clamped))

	return Value{
		Kind:    ValueRating,
		Text:    strings.Repeat("★", full) + strings.Repeat("☆", maxStars-full),
		Tooltip: fmt.Sprintf("%v / %d", num, maxStars),
	}
}

// buildLink renders the prominent link section, skipped when the url
// property already appears as a detail row or is not a usable URL.
func buildLink(pm map[string]any, cfg display.Config) *Link {
	for _, p := range cfg.DetailProperties {
		if p == "url" {
			return nil
		}
	}

	u := props.ExtractURL(pm["url"])
	if u == "" {
		return nil
	}
	return &Link{URL: u, Label: props.FormatURLLabel(u)}
}

func buildTags(pm map[string]any, cfg display.Config) []string {
	var tags []string
	for _, key := range []string{"type", "status", "area"} {
		if v, ok := pm[key]; ok {
			if cleaned := props.CleanValue(v); cleaned != "" {
				tags = append(tags, cleaned)
			}
		}
	}
	for _, prop := range cfg.ExtraTags {
		if v, ok := pm[prop]; ok {
			if cleaned := props.CleanValue(v); cleaned != "" {
				tags = append(tags, cleaned)
			}
		}
	}
	return tags
}

// RenderLink builds the popover content for an external link. The title
// falls back to the site name, then the domain. An error message replaces
// the description when the fetch produced a stable HTTP failure.
func RenderLink(meta *models.LinkMetadata) LinkPreview {
	title := meta.Title
	if title == "" {
		title = meta.SiteName
	}
	if title == "" {
		title = meta.Domain
	}

	preview := LinkPreview{
		URL:        meta.URL,
		Title:      title,
		FaviconURL: meta.FaviconURL,
		ImageURL:   meta.Image,
	}
	if meta.Error != "" {
		preview.Error = meta.Error
	} else {
		preview.Description = meta.Description
	}
	return preview
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
