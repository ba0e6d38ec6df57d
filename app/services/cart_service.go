package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/calc"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/format"
)

type CartView struct {
	Items          []models.CartItem `json:"items"`
	ItemCount      int               `json:"item_count"`
	DeliveryOption string            `json:"delivery_option"`
	Summary        calc.Totals       `json:"summary"`
	FormattedTotal string            `json:"formatted_total"`
}

type CartService struct {
	cartItemRepo   repositories.CartItemRepository
	productRepo    repositories.ProductRepository
	currencySymbol string
}

func NewCartService(cartItemRepo repositories.CartItemRepository, productRepo repositories.ProductRepository, currencySymbol string) *CartService {
	return &CartService{
		cartItemRepo:   cartItemRepo,
		productRepo:    productRepo,
		currencySymbol: currencySymbol,
	}
}

// GetCart returns the cart with a checkout preview computed the same way
// order creation computes totals. Rows whose product is gone or inactive are
// listed but not priced.
func (s *CartService) GetCart(ctx context.Context, userID, deliveryOption string) (*CartView, error) {
	if deliveryOption == "" {
		deliveryOption = models.DeliveryOptionStandard
	}

	items, err := s.cartItemRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]calc.Line, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		lines = append(lines, calc.Line{Price: item.Product.Price, Quantity: item.Quantity})
	}

	totals := calc.CalculateTotals(lines, deliveryOption == models.DeliveryOptionFastTrack)
	if len(lines) == 0 {
		totals = calc.Totals{}
	}

	return &CartView{
		Items:          items,
		ItemCount:      len(items),
		DeliveryOption: deliveryOption,
		Summary:        totals,
		FormattedTotal: format.Currency(s.currencySymbol, totals.Total),
	}, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	item, err := s.cartItemRepo.AddOrIncrement(ctx, nil, userID, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	item.Product = product
	return item, nil
}

// UpdateQuantity sets the quantity; zero removes the row.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	ok, err := s.cartItemRepo.SetQuantity(ctx, userID, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if !ok {
		return ErrNotInCart
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	ok, err := s.cartItemRepo.Delete(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !ok {
		return ErrNotInCart
	}
	return nil
}

func (s *CartService) Count(ctx context.Context, userID string) (int64, error) {
	return s.cartItemRepo.CountForUser(ctx, nil, userID)
}
