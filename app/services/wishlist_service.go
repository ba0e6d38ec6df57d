package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/metrics"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WishlistService struct {
	db           *gorm.DB
	wishlistRepo repositories.WishlistRepository
	cartRepo     repositories.CartItemRepository
	productRepo  repositories.ProductRepository
}

func NewWishlistService(db *gorm.DB, wishlistRepo repositories.WishlistRepository, cartRepo repositories.CartItemRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		db:           db,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
	}
}

type ToggleResult struct {
	Action        string `json:"action"`
	InWishlist    bool   `json:"in_wishlist"`
	WishlistCount int64  `json:"wishlist_count"`
}

type MoveToCartResult struct {
	CartItem      *models.CartItem `json:"cart_item"`
	WishlistCount int64            `json:"wishlist_count"`
	CartCount     int64            `json:"cart_count"`
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, int64, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return items, int64(len(items)), nil
}

func (s *WishlistService) requireProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	return nil
}

// Add is idempotent: an existing row reports alreadyExists instead of failing.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) (alreadyExists bool, count int64, err error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return false, 0, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.wishlistRepo.Add(ctx, tx, &models.WishlistItem{UserID: userID, ProductID: productID})
		if err != nil {
			return fmt.Errorf("failed to add to wishlist: %w", err)
		}
		alreadyExists = !inserted
		count, err = s.wishlistRepo.Count(ctx, tx, userID)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	if !alreadyExists {
		metrics.WishlistMutations.WithLabelValues("added").Inc()
	}
	return alreadyExists, count, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := s.wishlistRepo.Remove(ctx, tx, userID, productID)
		if err != nil {
			return fmt.Errorf("failed to remove from wishlist: %w", err)
		}
		if !removed {
			return ErrNotInWishlist
		}
		count, err = s.wishlistRepo.Count(ctx, tx, userID)
		return err
	})
	if err != nil {
		return 0, err
	}
	metrics.WishlistMutations.WithLabelValues("removed").Inc()
	return count, nil
}

func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (*ToggleResult, error) {
	exists, err := s.wishlistRepo.Exists(ctx, nil, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		count, err := s.Remove(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		return &ToggleResult{Action: "removed", InWishlist: false, WishlistCount: count}, nil
	}

	_, count, err := s.Add(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Action: "added", InWishlist: true, WishlistCount: count}, nil
}

func (s *WishlistService) Check(ctx context.Context, userID, productID string) (bool, error) {
	return s.wishlistRepo.Exists(ctx, nil, userID, productID)
}

// MoveToCart removes the wishlist row and adds the product to the cart in one
// transaction. Inactive products stay in the wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string, qty int) (*MoveToCartResult, error) {
	if qty <= 0 {
		qty = 1
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	result := &MoveToCartResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := s.wishlistRepo.Remove(ctx, tx, userID, productID)
		if err != nil {
			return fmt.Errorf("failed to remove from wishlist: %w", err)
		}
		if !removed {
			return ErrNotInWishlist
		}

		item, err := s.cartRepo.AddOrIncrement(ctx, tx, userID, productID, qty)
		if err != nil {
			return fmt.Errorf("failed to add to cart: %w", err)
		}
		result.CartItem = item

		if result.WishlistCount, err = s.wishlistRepo.Count(ctx, tx, userID); err != nil {
			return err
		}
		result.CartCount, err = s.cartRepo.CountForUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		log.Printf("WishlistService.MoveToCart: user %s product %s: %v", userID, productID, err)
		return nil, err
	}

	metrics.WishlistMutations.WithLabelValues("moved_to_cart").Inc()
	return result, nil
}
