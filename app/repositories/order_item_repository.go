package repositories

import (
	"context"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	CountByOrderIDs(ctx context.Context, orderIDs []string) (map[string]int, error)
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(r.DB, tx).WithContext(ctx).Create(&items).Error
}

func (r *OrderItemRepositoryImpl) CountByOrderIDs(ctx context.Context, orderIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(orderIDs))
	if len(orderIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		OrderID string
		Total   int
	}
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_id, COUNT(*) AS total").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.OrderID] = row.Total
	}
	return counts, nil
}
