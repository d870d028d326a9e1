package grid

import "slices"

// Correction selects which component absorbs the rounding error left after
// proportional rescaling.
type Correction int

const (
	// CorrectFirst adds the whole discrepancy to the first eligible component
	// of the row. Repeated gestures can push that component's size down to
	// zero or below; see CorrectClamped.
	CorrectFirst Correction = iota

	// CorrectClamped starts at the first eligible component like CorrectFirst
	// but never takes a component below size 1. Whatever cannot be absorbed
	// moves on to the next component in the row. Components that round down
	// to zero are lifted back to 1 before the correction.
	CorrectClamped
)

// String returns the policy name used in config files.
func (c Correction) String() string {
	if c == CorrectClamped {
		return "clamped"
	}
	return "first"
}

// Normalize rescales every row of l whose sum differs from the base unit.
// It returns the number of rows that were changed. On a strict layout a row
// whose rescaled sizes would drop below 1 is left as it is.
func Normalize(l *Layout) int {
	rows := split(l.components, l.base)
	changed := 0
	for i, r := range rows {
		if l.strict {
			next := slices.Clone(r)
			if normalizeRow(next, l.base, l.correction, noPlaceholder) && undersized(next) < 0 {
				rows[i] = next
				changed++
			}
			continue
		}
		if normalizeRow(r, l.base, l.correction, noPlaceholder) {
			changed++
		}
	}
	if changed > 0 {
		l.replace(flatten(rows))
	}
	return changed
}

const noPlaceholder = -1 << 31

// normalizeRow rescales row in place so that it sums to base. The component
// whose ID equals placeholder is skipped when picking the one that absorbs
// the rounding error, unless it is the only candidate.
func normalizeRow(row []Component, base int, policy Correction, placeholder int) bool {
	sum := sumSizes(row)
	if len(row) == 0 || sum == base {
		return false
	}

	for i := range row {
		row[i].Size = roundDiv(row[i].Size*base, sum)
		if policy == CorrectClamped && row[i].Size < 1 {
			row[i].Size = 1
		}
	}

	diff := base - sumSizes(row)
	if diff == 0 {
		return true
	}

	first := 0
	for i, c := range row {
		if c.ID != placeholder {
			first = i
			break
		}
	}

	if policy != CorrectClamped {
		row[first].Size += diff
		return true
	}

	for k := 0; k < len(row) && diff != 0; k++ {
		i := (first + k) % len(row)
		if diff > 0 {
			row[i].Size += diff
			diff = 0
			continue
		}
		take := min(-diff, row[i].Size-1)
		row[i].Size -= take
		diff += take
	}
	return true
}

// roundDiv returns round(n/d) for positive operands, rounding halves up.
func roundDiv(n, d int) int {
	return (2*n + d) / (2 * d)
}

// undersized returns the index of the first component below size 1, or -1.
func undersized(cs []Component) int {
	for i, c := range cs {
		if c.Size < 1 {
			return i
		}
	}
	return -1
}

func sumSizes(cs []Component) int {
	total := 0
	for _, c := range cs {
		total += c.Size
	}
	return total
}
