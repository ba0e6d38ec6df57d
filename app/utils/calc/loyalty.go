package calc

import "github.com/shopspring/decimal"

type Tier struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
}

// Tiers is ordered by MinPoints ascending.
var Tiers = []Tier{
	{Name: "bronze", MinPoints: 0},
	{Name: "silver", MinPoints: 1000},
	{Name: "gold", MinPoints: 5000},
	{Name: "platinum", MinPoints: 15000},
}

var pointsPerRupees = decimal.NewFromInt(100)

func TierFor(lifetimePoints int64) Tier {
	tier := Tiers[0]
	for _, t := range Tiers {
		if lifetimePoints >= t.MinPoints {
			tier = t
		}
	}
	return tier
}

func NextTier(lifetimePoints int64) (Tier, bool) {
	for _, t := range Tiers {
		if lifetimePoints < t.MinPoints {
			return t, true
		}
	}
	return Tier{}, false
}

// TierProgress returns the percentage travelled from the current tier floor
// towards the next one, and the points still missing. Top tier is 100/0.
func TierProgress(lifetimePoints int64) (int, int64) {
	current := TierFor(lifetimePoints)
	next, ok := NextTier(lifetimePoints)
	if !ok {
		return 100, 0
	}

	span := next.MinPoints - current.MinPoints
	done := lifetimePoints - current.MinPoints
	return int(done * 100 / span), next.MinPoints - lifetimePoints
}

// PointsForSubtotal is one point per full 100 of subtotal.
func PointsForSubtotal(subtotal decimal.Decimal) int64 {
	if subtotal.IsNegative() {
		return 0
	}
	return subtotal.Div(pointsPerRupees).Floor().IntPart()
}
