package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

const DefaultSymbol = "₹"

func Currency(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoney(amount.InexactFloat64())
}
