package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, address *models.Address) error
	FindByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Address, error)
	FindByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindDefault(ctx context.Context, tx *gorm.DB, userID string) (*models.Address, error)
	FindLatest(ctx context.Context, tx *gorm.DB, userID string) (*models.Address, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error
	SetDefault(ctx context.Context, tx *gorm.DB, id string) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) Create(ctx context.Context, tx *gorm.DB, address *models.Address) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(address).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to create address for user %s: %v", address.UserID, err)
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Address, error) {
	var address models.Address
	if err := conn(r.db, tx).WithContext(ctx).First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GormAddressRepository: Failed to find address by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to find address by ID: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) FindByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to find addresses for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to find addresses by user ID: %w", err)
	}
	return addresses, nil
}

func (r *GormAddressRepository) FindDefault(ctx context.Context, tx *gorm.DB, userID string) (*models.Address, error) {
	var address models.Address
	err := conn(r.db, tx).WithContext(ctx).Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default address: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) FindLatest(ctx context.Context, tx *gorm.DB, userID string) (*models.Address, error) {
	var address models.Address
	err := conn(r.db, tx).WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest address: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *GormAddressRepository) ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error {
	result := conn(r.db, tx).WithContext(ctx).Model(&models.Address{}).Where("user_id = ?", userID).Update("is_default", false)
	if result.Error != nil {
		log.Printf("GormAddressRepository.ClearDefault: failed to unset default addresses for user %s: %v", userID, result.Error)
		return result.Error
	}

	return nil
}

func (r *GormAddressRepository) SetDefault(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(r.db, tx).WithContext(ctx).Model(&models.Address{}).Where("id = ?", id).Update("is_default", true).Error
}

func (r *GormAddressRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if err := conn(r.db, tx).WithContext(ctx).Delete(&models.Address{}, "id = ?", id).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to delete address %s: %v", id, err)
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}
