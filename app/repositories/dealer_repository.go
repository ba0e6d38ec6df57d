package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type DealerRepository interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	FindByUserID(ctx context.Context, userID string) (*models.Dealer, error)

	Inventory(ctx context.Context, dealerID string) ([]models.DealerInventory, error)
	FindInventoryItem(ctx context.Context, dealerID, productID string) (*models.DealerInventory, error)
	SaveInventoryItem(ctx context.Context, item *models.DealerInventory) error

	Offers(ctx context.Context, dealerID string, activeOnly bool) ([]models.DealerOffer, error)
	CreateOffer(ctx context.Context, offer *models.DealerOffer) error
	DeactivateOffer(ctx context.Context, dealerID, offerID string) (bool, error)
}

type dealerRepository struct {
	db *gorm.DB
}

func NewDealerRepository(db *gorm.DB) DealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) Create(ctx context.Context, dealer *models.Dealer) error {
	return r.db.WithContext(ctx).Create(dealer).Error
}

func (r *dealerRepository) FindByUserID(ctx context.Context, userID string) (*models.Dealer, error) {
	var dealer models.Dealer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dealer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dealer, nil
}

func (r *dealerRepository) Inventory(ctx context.Context, dealerID string) ([]models.DealerInventory, error) {
	var items []models.DealerInventory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("dealer_id = ?", dealerID).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LowStock = items[i].IsLowStock()
	}
	return items, nil
}

func (r *dealerRepository) FindInventoryItem(ctx context.Context, dealerID, productID string) (*models.DealerInventory, error) {
	var item models.DealerInventory
	err := r.db.WithContext(ctx).Where("dealer_id = ? AND product_id = ?", dealerID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *dealerRepository) SaveInventoryItem(ctx context.Context, item *models.DealerInventory) error {
	item.LowStock = item.IsLowStock()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *dealerRepository) Offers(ctx context.Context, dealerID string, activeOnly bool) ([]models.DealerOffer, error) {
	var offers []models.DealerOffer
	q := r.db.WithContext(ctx).Where("dealer_id = ?", dealerID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("valid_until ASC").Find(&offers).Error
	return offers, err
}

func (r *dealerRepository) CreateOffer(ctx context.Context, offer *models.DealerOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *dealerRepository) DeactivateOffer(ctx context.Context, dealerID, offerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DealerOffer{}).
		Where("id = ? AND dealer_id = ?", offerID, dealerID).
		Update("is_active", false)
	return result.RowsAffected > 0, result.Error
}
