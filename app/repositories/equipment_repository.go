package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *models.Equipment) error
	FindByUser(ctx context.Context, userID string) ([]models.Equipment, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*models.Equipment, error)
	Save(ctx context.Context, equipment *models.Equipment) error
}

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	return r.db.WithContext(ctx).Create(equipment).Error
}

func (r *equipmentRepository) FindByUser(ctx context.Context, userID string) ([]models.Equipment, error) {
	var machines []models.Equipment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&machines).Error
	return machines, err
}

func (r *equipmentRepository) FindByIDForUser(ctx context.Context, id, userID string) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&equipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) Save(ctx context.Context, equipment *models.Equipment) error {
	return r.db.WithContext(ctx).Save(equipment).Error
}
