package grid

import "testing"

func sample() []Component { return Sample() }

func mustLayout(t *testing.T, cs []Component, opts ...Option) *Layout {
	t.Helper()
	l, err := New(cs, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return l
}

func ids(cs []Component) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func sizes(cs []Component) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.Size
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func assertRowSums(t *testing.T, l *Layout) {
	t.Helper()
	for i, r := range l.Rows() {
		if r.Sum != l.Base() {
			t.Errorf("row %d sum = %d, want %d (sizes %v)", i, r.Sum, l.Base(), sizes(l.Components()))
		}
	}
}
