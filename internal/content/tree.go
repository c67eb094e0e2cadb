// Package content renders records and link metadata into structured
// content trees. A tree is plain data describing what the host surface
// should show, in a fixed section order; sections with no content are
// absent rather than empty.
package content

// Tree is the rendered popover content for a record.
type Tree struct {
	Header  Header
	Aliases string `json:",omitempty"`

	Description string      `json:",omitempty"`
	Snippet     string      `json:",omitempty"`
	Details     []DetailRow `json:",omitempty"`
	ArrayGroups []PillGroup `json:",omitempty"`
	Link        *Link       `json:",omitempty"`
	Tags        []string    `json:",omitempty"`
}

// Header is the popover title area. PhotoURL selects the photo-card
// layout; Target carries the record name the title navigates to.
type Header struct {
	Title    string
	Subtitle string `json:",omitempty"`
	PhotoURL string `json:",omitempty"`
	Target   string
}

// ValueKind discriminates how a detail-row value should be presented.
type ValueKind string

const (
	ValueText   ValueKind = "text"
	ValueEmail  ValueKind = "email"
	ValuePhone  ValueKind = "phone"
	ValueLink   ValueKind = "link"
	ValueRating ValueKind = "rating"
)

// DetailRow is one labeled key-value row.
type DetailRow struct {
	Label string
	Value Value
}

// Value is a detail-row value with presentation hints. Href is set for
// email/phone/link kinds; Tooltip for ratings.
type Value struct {
	Kind    ValueKind
	Text    string
	Href    string `json:",omitempty"`
	Tooltip string `json:",omitempty"`
}

// PillGroup renders each element of a multi-value property as a pill.
type PillGroup struct {
	Property string
	Pills    []string
}

// Link is the prominent external-link section.
type Link struct {
	URL   string
	Label string
}

// LinkPreview is the rendered popover content for an external link.
// Exactly one of the content fields or Error carries the story.
type LinkPreview struct {
	URL        string
	Title      string
	FaviconURL string

	ImageURL    string `json:",omitempty"`
	Description string `json:",omitempty"`
	Error       string `json:",omitempty"`
}
