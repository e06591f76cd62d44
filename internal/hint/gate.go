package hint

// maxViews is how many times the hint is shown to a player who never locks a tile.
const maxViews = 5

// Prefs are the persisted flags the gate reads. Each is stored independently.
type Prefs struct {
	Dismissed bool `json:"dismissed"`
	Views     int  `json:"views"`
	LockUsed  bool `json:"lockUsed"`
}

// Eligible reports whether the hint may still be shown.
func Eligible(p Prefs) bool {
	switch {
	case p.Dismissed:
		return false
	case p.Views >= maxViews && !p.LockUsed:
		return false
	case p.LockUsed && p.Views >= 1:
		return false
	}
	return true
}

// ShouldArm combines the lock-pattern classification with gate eligibility.
func ShouldArm(mask [9]bool, p Prefs) bool {
	return IsFrustrating(mask) && Eligible(p)
}
