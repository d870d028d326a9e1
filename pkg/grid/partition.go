package grid

// Row is a non-owning view of a contiguous run of components, the half-open
// index range [Start, End) of the layout's component list.
type Row struct {
	Start int
	End   int
	Sum   int
}

// Len returns the number of components in the row.
func (r Row) Len() int { return r.End - r.Start }

// Contains reports whether component index i belongs to the row.
func (r Row) Contains(i int) bool { return i >= r.Start && i < r.End }

// Complete reports whether the row sums to exactly base.
func (r Row) Complete(base int) bool { return r.Sum == base }

// Partition derives rows from an ordered component list by accumulating sizes
// until the running total reaches or exceeds base. A trailing row that never
// reaches base is still returned. Partition has no side effects.
func Partition(components []Component, base int) []Row {
	var rows []Row
	open := Row{}
	for i, c := range components {
		if open.Len() == 0 {
			open = Row{Start: i, End: i}
		}
		open.End = i + 1
		open.Sum += c.Size
		if open.Sum >= base {
			rows = append(rows, open)
			open = Row{Start: i + 1, End: i + 1}
		}
	}
	if open.Len() > 0 {
		rows = append(rows, open)
	}
	return rows
}

// split returns the components of every row as separate slices.
func split(components []Component, base int) [][]Component {
	rows := Partition(components, base)
	out := make([][]Component, len(rows))
	for i, r := range rows {
		out[i] = append([]Component(nil), components[r.Start:r.End]...)
	}
	return out
}

// flatten concatenates rows back into one ordered list.
func flatten(rows [][]Component) []Component {
	var out []Component
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
