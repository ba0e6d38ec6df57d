package fakers

import (
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/shopspring/decimal"
)

func DemoDealer(userID string) *models.Dealer {
	return &models.Dealer{
		UserID:       userID,
		BusinessName: "Faridabad Earthmovers Spares",
		GSTNumber:    "06AABCF1234K1Z5",
		Phone:        "9810000000",
		City:         "Faridabad",
		State:        "Haryana",
		Status:       models.DealerStatusActive,
	}
}

// DealerStock stocks every product at 85% of its list price. Every third item
// starts at its reorder level so the dashboard shows low stock.
func DealerStock(dealerID string, products []models.Product) []models.DealerInventory {
	discount := decimal.NewFromFloat(0.85)
	items := make([]models.DealerInventory, 0, len(products))
	for i, p := range products {
		qty := 25
		if i%3 == 0 {
			qty = 5
		}
		items = append(items, models.DealerInventory{
			DealerID:     dealerID,
			ProductID:    p.ID,
			Quantity:     qty,
			DealerPrice:  p.Price.Mul(discount).Round(2),
			ReorderLevel: 5,
		})
	}
	return items
}
