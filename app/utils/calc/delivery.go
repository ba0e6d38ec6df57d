package calc

import "github.com/shopspring/decimal"

var (
	FastTrackFee          = decimal.NewFromInt(499)
	StandardFee           = decimal.NewFromInt(99)
	FreeDeliveryThreshold = decimal.NewFromInt(5000)
)

// DeliveryFee applies the two-tier rule: expedited delivery is a flat fee,
// standard delivery is free at or above the threshold.
func DeliveryFee(subtotal decimal.Decimal, fastTrack bool) decimal.Decimal {
	if fastTrack {
		return FastTrackFee
	}
	if subtotal.GreaterThanOrEqual(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return StandardFee
}
