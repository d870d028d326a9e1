package view

import (
	"testing"

	"github.com/matzehuels/rowgrid/pkg/grid"
)

func TestHitTesting(t *testing.T) {
	v := Build(mustLayout(t, grid.Sample()), DefaultOptions())

	if r, ok := v.RowAt(130); !ok || r.Index != 1 {
		t.Errorf("RowAt(130) = %d, %v; want 1, true", r.Index, ok)
	}
	if _, ok := v.RowAt(400); ok {
		t.Error("RowAt(400) found a row below the layout")
	}

	if s, ok := v.SplitterAt(360, 50); !ok || s.Left != 0 || s.Right != 1 {
		t.Errorf("SplitterAt(360, 50) = %+v, %v", s, ok)
	}
	if _, ok := v.SplitterAt(360, 5); ok {
		t.Error("SplitterAt found a splitter in the padding band")
	}

	if c, ok := v.ComponentAt(100, 50); !ok || c.ID != 1 {
		t.Errorf("ComponentAt(100, 50) = %d, %v; want 1, true", c.ID, ok)
	}
	if c, ok := v.ComponentAt(500, 170); !ok || c.ID != 3 {
		t.Errorf("ComponentAt(500, 170) = %d, %v; want 3, true", c.ID, ok)
	}
	if _, ok := v.ComponentAt(360, 50); ok {
		t.Error("ComponentAt hit a splitter")
	}
}

func TestTarget(t *testing.T) {
	v := Build(mustLayout(t, grid.Sample()), DefaultOptions())

	tests := []struct {
		name   string
		x, y   float64
		want   grid.Target
		wantOK bool
	}{
		{"left half", 100, 50, grid.Target{Placement: grid.PlaceBefore, Component: 1}, true},
		{"right half", 300, 50, grid.Target{Placement: grid.PlaceAfter, Component: 1}, true},
		{"second row", 900, 170, grid.Target{Placement: grid.PlaceAfter, Component: 4}, true},
		{"top band", 100, 5, grid.Target{Placement: grid.PlaceRowAbove, Row: 0}, true},
		{"bottom band", 100, 110, grid.Target{Placement: grid.PlaceRowBelow, Row: 0}, true},
		{"bottom band row 2", 100, 350, grid.Target{Placement: grid.PlaceRowBelow, Row: 2}, true},
		{"splitter", 360, 50, grid.Target{}, false},
		{"outside", 100, 400, grid.Target{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Target(tt.x, tt.y)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Target(%v, %v) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
