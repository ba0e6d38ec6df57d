package repositories

import (
	"context"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type OrderStatusHistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.OrderStatusHistory) error
}

type orderStatusHistoryRepository struct {
	db *gorm.DB
}

func NewOrderStatusHistoryRepository(db *gorm.DB) OrderStatusHistoryRepository {
	return &orderStatusHistoryRepository{db: db}
}

func (r *orderStatusHistoryRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.OrderStatusHistory) error {
	return conn(r.db, tx).WithContext(ctx).Create(entry).Error
}
