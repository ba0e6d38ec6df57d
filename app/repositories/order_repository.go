package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*models.Order, error)
	FindByTrackingNumberForUser(ctx context.Context, trackingNumber, userID string) (*models.Order, error)
	FindByUserPaginated(ctx context.Context, userID, status string, limit, offset int) ([]models.Order, int64, error)
	UpdateIfStatusIn(ctx context.Context, tx *gorm.DB, orderID string, statuses []string, updates map[string]interface{}) (bool, error)
	FindForDealer(ctx context.Context, dealerID, status string, limit, offset int) ([]models.Order, int64, error)
	AllForDealer(ctx context.Context, dealerID string) ([]models.Order, error)
	BelongsToDealer(ctx context.Context, orderID, dealerID string) (bool, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Address", "OrderItems", "StatusHistory").Create(order).Error
}

func (r *gormOrderRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Address")
}

func (r *gormOrderRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error) {
	var order models.Order

	err := r.withDetails(conn(r.db, tx).WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByIDForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	var order models.Order

	err := r.withDetails(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByTrackingNumberForUser(ctx context.Context, trackingNumber, userID string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tracking_number = ? AND user_id = ?", trackingNumber, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserPaginated(ctx context.Context, userID, status string, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateIfStatusIn applies updates only while the order still sits in one of
// statuses, so a concurrent transition is never overwritten.
func (r *gormOrderRepository) UpdateIfStatusIn(ctx context.Context, tx *gorm.DB, orderID string, statuses []string, updates map[string]interface{}) (bool, error) {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, statuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormOrderRepository) dealerOrderIDs(ctx context.Context, dealerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.order_id").
		Joins("JOIN dealer_inventories ON dealer_inventories.product_id = order_items.product_id").
		Where("dealer_inventories.dealer_id = ?", dealerID)
}

func (r *gormOrderRepository) FindForDealer(ctx context.Context, dealerID, status string, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Order{}).Where("id IN (?)", r.dealerOrderIDs(ctx, dealerID))
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().
		Preload("OrderItems").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *gormOrderRepository) AllForDealer(ctx context.Context, dealerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Select("id", "status", "total_amount").
		Where("id IN (?)", r.dealerOrderIDs(ctx, dealerID)).
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) BelongsToDealer(ctx context.Context, orderID, dealerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND id IN (?)", orderID, r.dealerOrderIDs(ctx, dealerID)).
		Count(&count).Error
	return count > 0, err
}
