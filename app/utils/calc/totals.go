package calc

import "github.com/shopspring/decimal"

type Line struct {
	Price    decimal.Decimal
	Quantity int
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total_amount"`
}

func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func CalculateTotals(lines []Line, fastTrack bool) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Price, l.Quantity))
	}

	tax := CalculateTax(subtotal)
	fee := DeliveryFee(subtotal, fastTrack)

	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		DeliveryFee: fee,
		Total:       CalculateGrandTotal(subtotal, tax, fee),
	}
}
