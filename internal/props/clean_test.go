package props

import (
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
)

func TestCleanValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "hello", "hello"},
		{"trims whitespace", "  padded  ", "padded"},
		{"one bracket layer", "[[Resource]]", "Resource"},
		{"nested brackets strip one layer", "[[[[Nested]]]]", "[[Nested]]"},
		{"array first element", []any{"first", "second"}, "first"},
		{"empty array", []any{}, ""},
		{"nil", nil, ""},
		{"number stringified", 4, "4"},
		{"float stringified", 4.5, "4.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanValue(tc.in); got != tc.want {
				t.Errorf("CleanValue(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanAll(t *testing.T) {
	got := CleanAll([]any{"[[Go]]", " TS ", ""})
	if len(got) != 2 || got[0] != "Go" || got[1] != "TS" {
		t.Errorf("CleanAll = %v", got)
	}

	single := CleanAll("solo")
	if len(single) != 1 || single[0] != "solo" {
		t.Errorf("CleanAll single = %v", single)
	}

	if got := CleanAll(nil); got != nil {
		t.Errorf("CleanAll(nil) = %v, want nil", got)
	}
}

func TestCleanBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"cross refs unwrapped", "see [[Other Page]] here", "see Other Page here"},
		{"emphasis stripped", "**bold** and _italic_ and `code`", "bold and italic and code"},
		{"heading stripped", "## Section title", "Section title"},
		{"image removed", "before ![alt](pic.png) after", "before  after"},
		{"link keeps label", "see [docs](https://example.com)", "see docs"},
		{"property line removed", "type:: Note\nreal content", "real content"},
		{"block ref removed", "see ((abc123-def)) there", "see  there"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanBlock(tc.in); got != tc.want {
				t.Errorf("CleanBlock(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractURL(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"https://example.com/page", "https://example.com/page"},
		{"[GitHub](https://github.com/user/repo)", "https://github.com/user/repo"},
		{"not a url", ""},
		{nil, ""},
		{[]any{"https://first.example"}, "https://first.example"},
	}
	for _, tc := range cases {
		if got := ExtractURL(tc.in); got != tc.want {
			t.Errorf("ExtractURL(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatURLLabel(t *testing.T) {
	cases := map[string]string{
		"https://github.com/user/my-project": "user/my-project",
		"https://example.com/":               "example.com",
		"https://example.com":                "example.com",
		"://bad":                             "://bad",
	}
	for raw, want := range cases {
		if got := FormatURLLabel(raw); got != want {
			t.Errorf("FormatURLLabel(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSnippet(t *testing.T) {
	blocks := []models.Block{
		{Content: "First **bold** block."},
		{Content: ""},
		{Content: "Second with [[Ref]]."},
	}
	got := Snippet(blocks, SnippetMaxLength)
	if got != "First bold block. Second with Ref." {
		t.Errorf("Snippet = %q", got)
	}
}

func TestSnippet_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 250)
	got := Snippet([]models.Block{{Content: long}}, SnippetMaxLength)

	runes := []rune(got)
	if len(runes) > SnippetMaxLength+1 {
		t.Errorf("len = %d runes, want <= %d", len(runes), SnippetMaxLength+1)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated snippet must end with ellipsis: %q", got[len(got)-10:])
	}
	// Cut at a word boundary, so no partial word before the ellipsis.
	body := strings.TrimSuffix(got, "…")
	if strings.HasSuffix(body, "wor") || strings.HasSuffix(body, "wo") {
		t.Errorf("snippet cut mid-word: %q", body[len(body)-10:])
	}
}

func TestSnippet_Empty(t *testing.T) {
	if got := Snippet(nil, SnippetMaxLength); got != "" {
		t.Errorf("Snippet(nil) = %q", got)
	}
	if got := Snippet([]models.Block{{Content: "type:: Note"}}, SnippetMaxLength); got != "" {
		t.Errorf("property-only blocks should yield empty snippet, got %q", got)
	}
}
