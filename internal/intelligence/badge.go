package intelligence

const (
	BadgeHot  = "HOT"
	BadgeWarm = "WARM"
	BadgeCold = "COLD"
)

// ImportanceBadge classifies a normalized weight into a display badge.
func ImportanceBadge(weight float64) string {
	if weight > 0.7 {
		return BadgeHot
	}
	if weight > 0.4 {
		return BadgeWarm
	}
	return BadgeCold
}
