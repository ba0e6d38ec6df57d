package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategorySummary is a catalog category derived from active products.
type CategorySummary struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]CategorySummary, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]CategorySummary, error) {
	var categories []CategorySummary

	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category AS name, COUNT(*) AS product_count").
		Where("is_active = ? AND category <> ''", true).
		Group("category").
		Order("category ASC").
		Scan(&categories).Error
	if err != nil {
		log.Printf("GetAll: Failed to get categories: %v", err)
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}
