package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/db/fakers"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DBSeed loads the demo catalog and, when dealerUserID is set, a dealer with
// stock for every product. Re-running it leaves existing rows alone.
func DBSeed(ctx context.Context, db *gorm.DB, dealerUserID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := fakers.CatalogProducts()
		for i := range products {
			if err := tx.Where(models.Product{PartNumber: products[i].PartNumber}).FirstOrCreate(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", products[i].PartNumber, err)
			}
		}
		log.Printf("seeder: %d products ready", len(products))

		if dealerUserID == "" {
			return nil
		}

		dealer := fakers.DemoDealer(dealerUserID)
		if err := tx.Where(models.Dealer{UserID: dealerUserID}).FirstOrCreate(dealer).Error; err != nil {
			return fmt.Errorf("failed to seed dealer: %w", err)
		}

		for _, item := range fakers.DealerStock(dealer.ID, products) {
			item := item
			if err := tx.Where(models.DealerInventory{DealerID: item.DealerID, ProductID: item.ProductID}).FirstOrCreate(&item).Error; err != nil {
				return fmt.Errorf("failed to seed inventory: %w", err)
			}
		}
		log.Printf("seeder: dealer %s stocked for user %s", dealer.BusinessName, dealerUserID)
		return nil
	})
}
