// Package hint decides when to offer the "lock a tile" contextual hint.
package hint

// middleColumn holds the board indices of the centre column of the 3x3 grid.
var middleColumn = [...]int{1, 4, 7}

// IsFrustrating classifies a system-lock mask as one that makes reordering
// awkward: a locked centre-column tile, or locked tiles separated by a gap.
func IsFrustrating(mask [9]bool) bool {
	var locked []int
	for i, l := range mask {
		if l {
			locked = append(locked, i)
		}
	}
	if len(locked) == 0 || len(locked) == len(mask) {
		return false
	}
	for _, i := range middleColumn {
		if mask[i] {
			return true
		}
	}
	for k := 1; k < len(locked); k++ {
		if locked[k]-locked[k-1] > 1 {
			return true
		}
	}
	return false
}
