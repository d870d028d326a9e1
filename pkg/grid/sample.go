package grid

// Sample returns the six-component layout the editor opens with when no
// file is given: three rows of [9 15] [15 9] [9 15].
func Sample() []Component {
	return []Component{
		{ID: 1, Kind: "image", Size: 9},
		{ID: 2, Kind: "text", Size: 15},
		{ID: 3, Kind: "text", Size: 15},
		{ID: 4, Kind: "image", Size: 9},
		{ID: 5, Kind: "image", Size: 9},
		{ID: 6, Kind: "text", Size: 15},
	}
}
