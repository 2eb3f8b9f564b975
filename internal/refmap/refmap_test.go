package refmap

import "testing"

func TestResolveRawTitle(t *testing.T) {
	table := New([]string{"Page A", "Page B"}, "md")

	if got := table.Resolve("Page B"); got != "page_b.md" {
		t.Fatalf("Resolve raw = %q, want page_b.md", got)
	}
}

func TestResolveEncodedTitle(t *testing.T) {
	table := New([]string{"Setup Guide"}, "md")

	tests := []struct {
		ref  string
		want string
	}{
		{"Setup%20Guide", "setup_guide.md"},
		{"Setup Guide", "setup_guide.md"},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.ref); got != tt.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestResolveNormalizedKey(t *testing.T) {
	table := New([]string{"Setup-Guide"}, "md")

	// En dash and odd casing/whitespace still hit the indexed title.
	if got := table.Resolve("setup–guide"); got != "setup-guide.md" {
		t.Fatalf("Resolve normalized = %q", got)
	}
	if got := table.Resolve("  SETUP-GUIDE "); got != "setup-guide.md" {
		t.Fatalf("Resolve normalized casing = %q", got)
	}
}

func TestResolveFallback(t *testing.T) {
	table := New([]string{"Page A"}, "md")

	// Unknown references degrade to a computed filename, never an error.
	if got := table.Resolve("Missing Page"); got != "missing_page.md" {
		t.Fatalf("Resolve fallback = %q", got)
	}
	if got := table.Resolve("Missing%20Page"); got != "missing_page.md" {
		t.Fatalf("Resolve encoded fallback = %q", got)
	}
}

func TestResolveLanding(t *testing.T) {
	table := New([]string{"Wiki", "Page A"}, "md")

	if got := table.Resolve("Wiki"); got != "index.md" {
		t.Fatalf("Resolve landing = %q, want index.md", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	// Two titles normalizing identically: index order decides the winner.
	table := New([]string{"Page–B", "Page-B"}, "md")

	if got := table.Resolve("page-b"); got != "page-b.md" {
		t.Fatalf("Resolve after collision = %q, want page-b.md", got)
	}
}

func TestKnown(t *testing.T) {
	table := New([]string{"Page A", ""}, "md")

	if !table.Known("Page A") || !table.Known("Page%20A") || !table.Known("page a") {
		t.Fatal("expected indexed title to be known under all key forms")
	}
	if table.Known("Page B") {
		t.Fatal("unexpected known for absent title")
	}
	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (blank titles skipped)", table.Len())
	}
}
