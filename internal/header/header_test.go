package header

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// headerTitle parses the frontmatter of normalized content and returns the
// title field.
func headerTitle(t *testing.T, content string) string {
	t.Helper()
	rest, ok := strings.CutPrefix(content, Delimiter+"\n")
	if !ok {
		t.Fatalf("content does not start with frontmatter: %q", content)
	}
	block, _, ok := strings.Cut(rest, "\n"+Delimiter+"\n")
	if !ok {
		t.Fatalf("unterminated frontmatter: %q", content)
	}
	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		t.Fatalf("frontmatter is not valid YAML: %v\n%s", err, block)
	}
	return fm.Title
}

func TestNormalizeATXHeading(t *testing.T) {
	got := Normalize("# Overview\n\nSome text.\n", "Page A")

	want := "---\ntitle: Overview\n---\n\n# Overview\n\nSome text.\n"
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeSetextHeading(t *testing.T) {
	got := Normalize("Overview\n========\n\nSome text.\n", "Page A")

	if title := headerTitle(t, got); title != "Overview" {
		t.Fatalf("title = %q, want Overview", title)
	}
	if !strings.Contains(got, "Overview\n========") {
		t.Fatalf("body lost setext heading: %q", got)
	}
}

func TestNormalizeFallsBackToPageTitle(t *testing.T) {
	got := Normalize("just a paragraph\n", "Page A")

	if title := headerTitle(t, got); title != "Page A" {
		t.Fatalf("title = %q, want Page A", title)
	}
}

func TestNormalizeIgnoresSubHeadings(t *testing.T) {
	got := Normalize("## Section\n\ntext\n", "Page A")

	if title := headerTitle(t, got); title != "Page A" {
		t.Fatalf("title = %q, want Page A", title)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("# Overview\n\nSome text.\n", "Page A")
	twice := Normalize(once, "Page A")

	if once != twice {
		t.Fatalf("Normalize not idempotent:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func TestNormalizeExistingHeaderUntouched(t *testing.T) {
	in := "---\ntitle: Kept\nextra: field\n---\nbody\n"

	if got := Normalize(in, "Page A"); got != in {
		t.Fatalf("existing header rewritten: %q", got)
	}
}

func TestNormalizeStripsLeadingBlankLines(t *testing.T) {
	got := Normalize("\n\n   \nActual content.\n", "Page A")

	if !strings.HasSuffix(got, "---\n\nActual content.\n") {
		t.Fatalf("leading blank lines kept: %q", got)
	}
}

func TestNormalizeEmptyBody(t *testing.T) {
	got := Normalize("", "Page A")

	if title := headerTitle(t, got); title != "Page A" {
		t.Fatalf("title = %q, want Page A", title)
	}
}

func TestNormalizeQuotedTitle(t *testing.T) {
	got := Normalize(`# The "Big" Release`+"\n\nbody\n", "Page A")

	if title := headerTitle(t, got); title != `The "Big" Release` {
		t.Fatalf("title = %q", title)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading markers", "## Overview", "Overview"},
		{"delimiter removed", "Ove---rview", "Overview"},
		{"emphasis", "**Bold** and *italic* and `code`", "Bold and italic and code"},
		{"emoji", "Release \U0001F680 Notes ✨", "Release Notes"},
		{"whitespace collapsed", "  Too   many\tspaces  ", "Too many spaces"},
		{"control chars", "Bad\x00Title", "BadTitle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.in); got != tt.want {
				t.Fatalf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstTopHeading(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"atx", "# First\n\n# Second\n", "First"},
		{"atx after text", "intro\n\n# Later\n", "Later"},
		{"setext", "First\n=====\n", "First"},
		{"emphasis inside", "# The *Real* Title\n", "The Real Title"},
		{"none", "plain text\n", ""},
		{"only subheading", "### Deep\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstTopHeading(tt.in); got != tt.want {
				t.Fatalf("FirstTopHeading(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
