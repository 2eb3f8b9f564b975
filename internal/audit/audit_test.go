package audit

import "testing"

func TestTrailCollectsInOrder(t *testing.T) {
	trail := New(true)
	trail.Logf("first")
	trail.Logf("second %d", 2)

	lines := trail.Lines()
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second 2" {
		t.Fatalf("Lines = %v", lines)
	}
}

func TestDisabledTrailDiscards(t *testing.T) {
	trail := New(false)
	trail.Logf("dropped")

	if trail.Len() != 0 {
		t.Fatalf("disabled trail recorded %d lines", trail.Len())
	}
	if trail.Enabled() {
		t.Fatal("Enabled should be false")
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	trail := New(true)
	trail.Logf("one")

	lines := trail.Lines()
	lines[0] = "mutated"

	if got := trail.Lines()[0]; got != "one" {
		t.Fatalf("internal state mutated: %q", got)
	}
}
