package repositories

import (
	"context"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, productID string) (bool, error)
	Add(ctx context.Context, tx *gorm.DB, item *models.WishlistItem) (bool, error)
	Remove(ctx context.Context, tx *gorm.DB, userID, productID string) (bool, error)
	Count(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) FindByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Exists(ctx context.Context, tx *gorm.DB, userID, productID string) (bool, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts the row unless (user, product) is already wishlisted and
// reports whether a row was written.
func (r *wishlistRepository) Add(ctx context.Context, tx *gorm.DB, item *models.WishlistItem) (bool, error) {
	result := conn(r.db, tx).WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item)
	return result.RowsAffected > 0, result.Error
}

func (r *wishlistRepository) Remove(ctx context.Context, tx *gorm.DB, userID, productID string) (bool, error) {
	result := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return result.RowsAffected > 0, result.Error
}

func (r *wishlistRepository) Count(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
