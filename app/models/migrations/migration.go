package migrations

import (
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Equipment{},
		&models.Dealer{},
		&models.DealerInventory{},
		&models.DealerOffer{},
		&models.LoyaltyAccount{},
		&models.LoyaltyTransaction{},
	)
}
