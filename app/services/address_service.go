package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"gorm.io/gorm"
)

type AddressService struct {
	db          *gorm.DB
	addressRepo repositories.AddressRepository
}

func NewAddressService(db *gorm.DB, addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{db: db, addressRepo: addressRepo}
}

// List returns the default address first.
func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	return s.addressRepo.FindByUser(ctx, userID)
}

// Create stores a new address. The first address a user saves becomes the
// default, and a new default clears the previous one.
func (s *AddressService) Create(ctx context.Context, userID string, address *models.Address) (*models.Address, error) {
	address.ID = ""
	address.UserID = userID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.addressRepo.CountByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		}
		if address.IsDefault && count > 0 {
			if err := s.addressRepo.ClearDefault(ctx, tx, userID); err != nil {
				return err
			}
		}
		return s.addressRepo.Create(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID, addressID string) (*models.Address, error) {
	var address *models.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		address, err = s.addressRepo.FindByIDForUser(ctx, tx, addressID, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return ErrAddressNotFound
		}
		if err := s.addressRepo.ClearDefault(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.addressRepo.SetDefault(ctx, tx, address.ID); err != nil {
			return fmt.Errorf("failed to set default address: %w", err)
		}
		address.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes the address; when it was the default, the newest remaining
// address takes over.
func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address, err := s.addressRepo.FindByIDForUser(ctx, tx, addressID, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return ErrAddressNotFound
		}
		if err := s.addressRepo.Delete(ctx, tx, address.ID); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}

		next, err := s.addressRepo.FindLatest(ctx, tx, userID)
		if err != nil || next == nil {
			return err
		}
		return s.addressRepo.SetDefault(ctx, tx, next.ID)
	})
}
