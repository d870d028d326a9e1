package grid

import "testing"

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		want  []Row
	}{
		{
			name:  "three full rows",
			sizes: []int{9, 15, 15, 9, 9, 15},
			want:  []Row{{0, 2, 24}, {2, 4, 24}, {4, 6, 24}},
		},
		{
			name:  "short trailing row is kept",
			sizes: []int{9, 15, 9},
			want:  []Row{{0, 2, 24}, {2, 3, 9}},
		},
		{
			name:  "overflow closes the row",
			sizes: []int{20, 10, 24},
			want:  []Row{{0, 2, 30}, {2, 3, 24}},
		},
		{
			name:  "single full component",
			sizes: []int{24},
			want:  []Row{{0, 1, 24}},
		},
		{
			name:  "empty",
			sizes: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := make([]Component, len(tt.sizes))
			for i, s := range tt.sizes {
				cs[i] = Component{ID: i + 1, Kind: "text", Size: s}
			}
			got := Partition(cs, Base)
			if len(got) != len(tt.want) {
				t.Fatalf("Partition() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionIdempotent(t *testing.T) {
	inputs := [][]Component{
		sample(),
		{{ID: 1, Kind: "a", Size: 24}, {ID: 2, Kind: "b", Size: 8}, {ID: 3, Kind: "c", Size: 8}, {ID: 4, Kind: "d", Size: 8}},
		{{ID: 1, Kind: "a", Size: 5}},
	}

	for _, cs := range inputs {
		first := Partition(cs, Base)

		var flat []Component
		for _, r := range first {
			flat = append(flat, cs[r.Start:r.End]...)
		}
		second := Partition(flat, Base)

		if len(first) != len(second) {
			t.Fatalf("row count changed: %d -> %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("row %d changed: %+v -> %+v", i, first[i], second[i])
			}
		}
	}
}

func TestRowHelpers(t *testing.T) {
	r := Row{Start: 2, End: 5, Sum: 24}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if !r.Contains(2) || !r.Contains(4) || r.Contains(5) || r.Contains(1) {
		t.Error("Contains() should cover [2, 5)")
	}
	if !r.Complete(24) || r.Complete(12) {
		t.Error("Complete() mismatch")
	}
}
