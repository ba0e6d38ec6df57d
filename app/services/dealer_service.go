package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/format"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DealerDashboard struct {
	Dealer                  *models.Dealer  `json:"dealer"`
	InventorySKUs           int             `json:"inventory_skus"`
	TotalUnits              int             `json:"total_units"`
	LowStockCount           int             `json:"low_stock_count"`
	InventoryValue          decimal.Decimal `json:"inventory_value"`
	FormattedInventoryValue string          `json:"formatted_inventory_value"`
	ActiveOffers            int             `json:"active_offers"`
	TotalOrders             int             `json:"total_orders"`
	OrdersByStatus          map[string]int  `json:"orders_by_status"`
	DeliveredRevenue        decimal.Decimal `json:"delivered_revenue"`
	FormattedRevenue        string          `json:"formatted_revenue"`
}

type InventoryInput struct {
	Quantity     int
	DealerPrice  decimal.Decimal
	ReorderLevel int
}

type StatusUpdateInput struct {
	Status       string
	Location     string
	Note         string
	CourierName  string
	CourierPhone string
}

type OfferInput struct {
	ProductID       *string
	Title           string
	Description     string
	DiscountPercent decimal.Decimal
	ValidFrom       time.Time
	ValidUntil      time.Time
}

type DealerService struct {
	db             *gorm.DB
	dealerRepo     repositories.DealerRepository
	orderRepo      repositories.OrderRepository
	historyRepo    repositories.OrderStatusHistoryRepository
	productRepo    repositories.ProductRepository
	loyalty        *LoyaltyService
	publisher      EventPublisher
	currencySymbol string
	now            func() time.Time
}

func NewDealerService(
	db *gorm.DB,
	dealerRepo repositories.DealerRepository,
	orderRepo repositories.OrderRepository,
	historyRepo repositories.OrderStatusHistoryRepository,
	productRepo repositories.ProductRepository,
	loyalty *LoyaltyService,
	publisher EventPublisher,
	currencySymbol string,
) *DealerService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &DealerService{
		db:             db,
		dealerRepo:     dealerRepo,
		orderRepo:      orderRepo,
		historyRepo:    historyRepo,
		productRepo:    productRepo,
		loyalty:        loyalty,
		publisher:      publisher,
		currencySymbol: currencySymbol,
		now:            time.Now,
	}
}

// ActiveDealer returns the caller's dealer row, or ErrNotDealer when there is
// none or it is suspended.
func (s *DealerService) ActiveDealer(ctx context.Context, userID string) (*models.Dealer, error) {
	dealer, err := s.dealerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dealer == nil || dealer.Status != models.DealerStatusActive {
		return nil, ErrNotDealer
	}
	return dealer, nil
}

func (s *DealerService) Dashboard(ctx context.Context, dealer *models.Dealer) (*DealerDashboard, error) {
	inventory, err := s.dealerRepo.Inventory(ctx, dealer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	offers, err := s.dealerRepo.Offers(ctx, dealer.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	orders, err := s.orderRepo.AllForDealer(ctx, dealer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dealer orders: %w", err)
	}

	d := &DealerDashboard{
		Dealer:           dealer,
		InventorySKUs:    len(inventory),
		InventoryValue:   decimal.Zero,
		TotalOrders:      len(orders),
		OrdersByStatus:   map[string]int{},
		DeliveredRevenue: decimal.Zero,
	}

	for _, item := range inventory {
		d.TotalUnits += item.Quantity
		if item.LowStock {
			d.LowStockCount++
		}
		d.InventoryValue = d.InventoryValue.Add(item.DealerPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := s.now()
	for _, o := range offers {
		if o.IsLive(now) {
			d.ActiveOffers++
		}
	}

	for _, o := range orders {
		d.OrdersByStatus[o.Status]++
		if o.Status == models.OrderStatusDelivered {
			d.DeliveredRevenue = d.DeliveredRevenue.Add(o.TotalAmount)
		}
	}

	d.FormattedInventoryValue = format.Currency(s.currencySymbol, d.InventoryValue)
	d.FormattedRevenue = format.Currency(s.currencySymbol, d.DeliveredRevenue)
	return d, nil
}

func (s *DealerService) Inventory(ctx context.Context, dealer *models.Dealer) ([]models.DealerInventory, error) {
	return s.dealerRepo.Inventory(ctx, dealer.ID)
}

func (s *DealerService) UpsertInventory(ctx context.Context, dealer *models.Dealer, productID string, in InventoryInput) (*models.DealerInventory, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item, err := s.dealerRepo.FindInventoryItem(ctx, dealer.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &models.DealerInventory{DealerID: dealer.ID, ProductID: productID}
	}
	item.Quantity = in.Quantity
	item.DealerPrice = in.DealerPrice
	item.ReorderLevel = in.ReorderLevel

	if err := s.dealerRepo.SaveInventoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}
	item.Product = product
	return item, nil
}

func (s *DealerService) Orders(ctx context.Context, dealer *models.Dealer, status string, limit, offset int) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.FindForDealer(ctx, dealer.ID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dealer orders: %w", err)
	}
	for i := range orders {
		orders[i].ItemCount = len(orders[i].OrderItems)
	}
	return orders, total, nil
}

// UpdateOrderStatus moves an order forward along the status flow. The status
// change, its history row and any loyalty credit commit together.
func (s *DealerService) UpdateOrderStatus(ctx context.Context, dealer *models.Dealer, orderID string, in StatusUpdateInput) (*models.Order, error) {
	ok, err := s.orderRepo.BelongsToDealer(ctx, orderID, dealer.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !models.CanTransition(order.Status, in.Status) {
		return nil, ErrInvalidStatusTransition
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":     in.Status,
		"updated_at": now,
	}
	if in.CourierName != "" {
		updates["courier_name"] = in.CourierName
	}
	if in.CourierPhone != "" {
		updates["courier_phone"] = in.CourierPhone
	}
	if in.Status == models.OrderStatusDelivered && order.PaymentStatus == models.PaymentStatusPending {
		updates["payment_status"] = models.PaymentStatusPaid
	}

	location := in.Location
	if location == "" {
		location = CannedLocation(in.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.orderRepo.UpdateIfStatusIn(ctx, tx, order.ID, []string{order.Status}, updates)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		if !ok {
			return ErrInvalidStatusTransition
		}

		if err := s.historyRepo.Create(ctx, tx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    in.Status,
			Location:  location,
			Note:      in.Note,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to record order status: %w", err)
		}

		if in.Status == models.OrderStatusDelivered && s.loyalty != nil {
			if _, err := s.loyalty.CreditOrder(ctx, tx, order); err != nil {
				return fmt.Errorf("failed to credit loyalty points: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(ctx, nil, order.ID)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.publisher, NewOrderEvent(EventOrderStatusChanged, updated, now))
	return updated, nil
}

func (s *DealerService) Offers(ctx context.Context, dealer *models.Dealer, activeOnly bool) ([]models.DealerOffer, error) {
	return s.dealerRepo.Offers(ctx, dealer.ID, activeOnly)
}

func (s *DealerService) CreateOffer(ctx context.Context, dealer *models.Dealer, in OfferInput) (*models.DealerOffer, error) {
	validFrom := in.ValidFrom
	if validFrom.IsZero() {
		validFrom = s.now()
	}
	if !in.ValidUntil.After(validFrom) {
		return nil, ErrInvalidOfferWindow
	}

	if in.ProductID != nil && *in.ProductID != "" {
		product, err := s.productRepo.GetByID(ctx, *in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
	} else {
		in.ProductID = nil
	}

	offer := &models.DealerOffer{
		DealerID:        dealer.ID,
		ProductID:       in.ProductID,
		Title:           in.Title,
		Description:     in.Description,
		DiscountPercent: in.DiscountPercent,
		ValidFrom:       validFrom,
		ValidUntil:      in.ValidUntil,
		IsActive:        true,
	}
	if err := s.dealerRepo.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

func (s *DealerService) DeactivateOffer(ctx context.Context, dealer *models.Dealer, offerID string) error {
	ok, err := s.dealerRepo.DeactivateOffer(ctx, dealer.ID, offerID)
	if err != nil {
		return fmt.Errorf("failed to deactivate offer: %w", err)
	}
	if !ok {
		return ErrOfferNotFound
	}
	return nil
}
