package grid

import (
	"testing"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

func TestMoveScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     []Component
		id        int
		target    Target
		wantIDs   []int
		wantSizes []int
		wantRows  int
	}{
		{
			name:      "swap within first row needs no normalization",
			input:     sample(),
			id:        2,
			target:    Target{Placement: PlaceBefore, Component: 1},
			wantIDs:   []int{2, 1, 3, 4, 5, 6},
			wantSizes: []int{15, 9, 15, 9, 9, 15},
			wantRows:  3,
		},
		{
			name:      "move into the middle row",
			input:     sample(),
			id:        1,
			target:    Target{Placement: PlaceAfter, Component: 3},
			wantIDs:   []int{2, 3, 1, 4, 5, 6},
			wantSizes: []int{24, 10, 7, 7, 9, 15},
			wantRows:  3,
		},
		{
			name:      "new row below the last row",
			input:     sample(),
			id:        1,
			target:    Target{Placement: PlaceRowBelow, Row: 2},
			wantIDs:   []int{2, 3, 4, 5, 6, 1},
			wantSizes: []int{24, 15, 9, 9, 15, 24},
			wantRows:  4,
		},
		{
			name:      "new row above the first row",
			input:     sample(),
			id:        6,
			target:    Target{Placement: PlaceRowAbove, Row: 0},
			wantIDs:   []int{6, 1, 2, 3, 4, 5},
			wantSizes: []int{24, 9, 15, 15, 9, 24},
			wantRows:  4,
		},
		{
			name: "emptied source row is removed",
			input: []Component{
				{ID: 1, Kind: "hero", Size: 24},
				{ID: 2, Kind: "text", Size: 12},
				{ID: 3, Kind: "text", Size: 12},
			},
			id:        1,
			target:    Target{Placement: PlaceAfter, Component: 3},
			wantIDs:   []int{2, 3, 1},
			wantSizes: []int{6, 6, 12},
			wantRows:  1,
		},
		{
			name:      "dropping on itself is a no-op",
			input:     sample(),
			id:        3,
			target:    Target{Placement: PlaceAfter, Component: 3},
			wantIDs:   []int{1, 2, 3, 4, 5, 6},
			wantSizes: []int{9, 15, 15, 9, 9, 15},
			wantRows:  3,
		},
		{
			name:      "promote a lone row onto itself",
			input:     []Component{{ID: 1, Kind: "a", Size: 24}, {ID: 2, Kind: "b", Size: 24}},
			id:        2,
			target:    Target{Placement: PlaceRowAbove, Row: 1},
			wantIDs:   []int{1, 2},
			wantSizes: []int{24, 24},
			wantRows:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLayout(t, tt.input)
			got, err := Move(l, tt.id, tt.target)
			if err != nil {
				t.Fatalf("Move() error: %v", err)
			}
			if !equalInts(ids(got), tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids(got), tt.wantIDs)
			}
			if !equalInts(sizes(got), tt.wantSizes) {
				t.Errorf("sizes = %v, want %v", sizes(got), tt.wantSizes)
			}
			if n := len(l.Rows()); n != tt.wantRows {
				t.Errorf("rows = %d, want %d", n, tt.wantRows)
			}
			assertRowSums(t, l)
		})
	}
}

func TestEndToEndScenario(t *testing.T) {
	l := mustLayout(t, sample())

	rows := l.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	wantRowSizes := [][]int{{9, 15}, {15, 9}, {9, 15}}
	for i, r := range rows {
		if got := sizes(l.Components()[r.Start:r.End]); !equalInts(got, wantRowSizes[i]) {
			t.Errorf("row %d = %v, want %v", i, got, wantRowSizes[i])
		}
	}

	s, err := BeginDrag(l, 2)
	if err != nil {
		t.Fatalf("BeginDrag() error: %v", err)
	}
	if s.Placeholder() != 2 {
		t.Errorf("Placeholder() = %d, want 2", s.Placeholder())
	}
	changed, err := s.Over(Target{Placement: PlaceBefore, Component: 1})
	if err != nil || !changed {
		t.Fatalf("Over() = %v, %v", changed, err)
	}
	final := s.End()

	if got := sizes(final); !equalInts(got, []int{15, 9, 15, 9, 9, 15}) {
		t.Errorf("sizes = %v", got)
	}
	if s.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", s.Moves())
	}
	assertRowSums(t, l)
}

func TestDragSessionMultipleHovers(t *testing.T) {
	l := mustLayout(t, sample())
	s, err := BeginDrag(l, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Hovering the same side of the same component twice changes nothing
	// the second time.
	if changed, _ := s.Over(Target{Placement: PlaceAfter, Component: 2}); !changed {
		t.Error("first hover should reorder")
	}
	if changed, _ := s.Over(Target{Placement: PlaceAfter, Component: 2}); changed {
		t.Error("repeated hover should be a no-op")
	}
	if changed, _ := s.Over(Target{Placement: PlaceNone}); changed {
		t.Error("PlaceNone should be a no-op")
	}

	final := s.End()
	if !equalInts(ids(final), []int{2, 1, 3, 4, 5, 6}) {
		t.Errorf("ids = %v", ids(final))
	}
	if _, err := s.Over(Target{Placement: PlaceBefore, Component: 3}); !errors.Is(err, errors.ErrCodeNoGesture) {
		t.Errorf("Over after End error = %v", err)
	}
}

func TestDragErrors(t *testing.T) {
	l := mustLayout(t, sample())

	if _, err := BeginDrag(l, 42); !errors.Is(err, errors.ErrCodeUnknownComponent) {
		t.Errorf("BeginDrag(42) error = %v", err)
	}

	s, err := BeginDrag(l, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Over(Target{Placement: PlaceBefore, Component: 42}); !errors.Is(err, errors.ErrCodeUnknownComponent) {
		t.Errorf("unknown target error = %v", err)
	}
	if _, err := s.Over(Target{Placement: PlaceRowBelow, Row: 3}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("row out of range error = %v", err)
	}
	if got := ids(l.Components()); !equalInts(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("failed placements must not mutate, ids = %v", got)
	}
}

func TestMoveKeepsInvariants(t *testing.T) {
	targets := func() []Target {
		var out []Target
		for id := 1; id <= 6; id++ {
			out = append(out,
				Target{Placement: PlaceBefore, Component: id},
				Target{Placement: PlaceAfter, Component: id})
		}
		for r := 0; r < 3; r++ {
			out = append(out,
				Target{Placement: PlaceRowAbove, Row: r},
				Target{Placement: PlaceRowBelow, Row: r})
		}
		return out
	}

	for id := 1; id <= 6; id++ {
		for _, tgt := range targets() {
			l := mustLayout(t, sample())
			got, err := Move(l, id, tgt)
			if err != nil {
				t.Fatalf("Move(%d, %+v) error: %v", id, tgt, err)
			}
			if len(got) != 6 {
				t.Fatalf("Move(%d, %+v) lost components: %v", id, tgt, ids(got))
			}
			for _, c := range got {
				if c.Size < 1 {
					t.Errorf("Move(%d, %+v) produced size %d", id, tgt, c.Size)
				}
			}
			assertRowSums(t, l)
		}
	}
}

func TestStrictSizesRejectUndersizedPlacement(t *testing.T) {
	ones := make([]Component, 0, 26)
	for id := 1; id <= 24; id++ {
		ones = append(ones, Component{ID: id, Kind: "text", Size: 1})
	}
	ones = append(ones, Component{ID: 25, Kind: "image", Size: 8}, Component{ID: 26, Kind: "text", Size: 16})

	tests := []struct {
		name      string
		cs        []Component
		id        int
		target    Target
		loose     []int // prefix of the sizes without WithStrictSizes
		looseSize int   // smallest size without WithStrictSizes
	}{
		{
			name:      "small component absorbs the rounding error",
			cs:        []Component{{ID: 1, Kind: "a", Size: 1}, {ID: 2, Kind: "b", Size: 23}, {ID: 3, Kind: "c", Size: 24}},
			id:        3,
			target:    Target{Placement: PlaceAfter, Component: 2},
			loose:     []int{0, 12, 12},
			looseSize: 0,
		},
		{
			name:      "row of unit components",
			cs:        ones,
			id:        25,
			target:    Target{Placement: PlaceAfter, Component: 1},
			loose:     []int{-5, 6, 1},
			looseSize: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loose := mustLayout(t, tt.cs)
			got, err := Move(loose, tt.id, tt.target)
			if err != nil {
				t.Fatalf("Move() error: %v", err)
			}
			if !equalInts(sizes(got)[:len(tt.loose)], tt.loose) {
				t.Errorf("default sizes = %v, want prefix %v", sizes(got), tt.loose)
			}
			smallest := got[0].Size
			for _, c := range got {
				smallest = min(smallest, c.Size)
			}
			if smallest != tt.looseSize {
				t.Errorf("default smallest size = %d, want %d", smallest, tt.looseSize)
			}

			strict := mustLayout(t, tt.cs, WithStrictSizes())
			before := strict.Components()
			if _, err := Move(strict, tt.id, tt.target); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
				t.Fatalf("strict Move() error = %v, want INVALID_GEOMETRY", err)
			}
			if got := strict.Components(); !equalInts(sizes(got), sizes(before)) || !equalInts(ids(got), ids(before)) {
				t.Errorf("rejected placement changed the layout: %v", got)
			}
			if _, err := New(strict.Components()); err != nil {
				t.Errorf("layout after rejection does not reload: %v", err)
			}
		})
	}
}

func TestPlacementGeometry(t *testing.T) {
	if p := HorizontalPlacement(10, 0, 40); p != PlaceBefore {
		t.Errorf("left half = %v", p)
	}
	if p := HorizontalPlacement(20, 0, 40); p != PlaceAfter {
		t.Errorf("midpoint = %v, want after", p)
	}
	if p := VerticalPlacement(2, 5, 20); p != PlaceRowAbove {
		t.Errorf("above content = %v", p)
	}
	if p := VerticalPlacement(21, 5, 20); p != PlaceRowBelow {
		t.Errorf("below content = %v", p)
	}
	if p := VerticalPlacement(10, 5, 20); p != PlaceNone {
		t.Errorf("inside content = %v", p)
	}
}

func TestParsePlacement(t *testing.T) {
	for _, p := range []Placement{PlaceNone, PlaceBefore, PlaceAfter, PlaceRowAbove, PlaceRowBelow} {
		got, err := ParsePlacement(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePlacement(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePlacement("sideways"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParsePlacement(sideways) error = %v", err)
	}

	var p Placement
	if err := p.UnmarshalText([]byte("Row-Below")); err != nil || p != PlaceRowBelow {
		t.Errorf("UnmarshalText = %v, %v", p, err)
	}
}
