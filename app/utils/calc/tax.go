package calc

import "github.com/shopspring/decimal"

func GetTaxPercent() decimal.Decimal {
	var taxPercent = decimal.NewFromInt(18)

	return taxPercent
}

func CalculateTax(baseTotal decimal.Decimal) decimal.Decimal {

	taxPercent := GetTaxPercent()

	return baseTotal.Mul(taxPercent).Div(decimal.NewFromInt(100)).Round(2)

}

func CalculateGrandTotal(subtotal, taxAmount, deliveryFee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(taxAmount).Add(deliveryFee)
}
