package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type CartItemRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Find(ctx context.Context, tx *gorm.DB, userID, productID string) (*models.CartItem, error)
	AddOrIncrement(ctx context.Context, tx *gorm.DB, userID, productID string, qty int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID string, qty int) (bool, error)
	Delete(ctx context.Context, userID, productID string) (bool, error)
	ClearForUser(ctx context.Context, tx *gorm.DB, userID string) error
	CountForUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &cartItemRepository{db}
}

func (r *cartItemRepository) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartItemRepository) Find(ctx context.Context, tx *gorm.DB, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem

	err := conn(r.db, tx).WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (r *cartItemRepository) AddOrIncrement(ctx context.Context, tx *gorm.DB, userID, productID string, qty int) (*models.CartItem, error) {
	db := conn(r.db, tx).WithContext(ctx)

	existing, err := r.Find(ctx, tx, userID, productID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += qty
		if err := db.Model(existing).Update("quantity", gorm.Expr("quantity + ?", qty)).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartItemRepository) SetQuantity(ctx context.Context, userID, productID string, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)
	return result.RowsAffected > 0, result.Error
}

func (r *cartItemRepository) Delete(ctx context.Context, userID, productID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return result.RowsAffected > 0, result.Error
}

func (r *cartItemRepository) ClearForUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return conn(r.db, tx).WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (r *cartItemRepository) CountForUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}
