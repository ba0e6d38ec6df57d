package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/metrics"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	FastTrackDeliveryDays = 2
	StandardDeliveryDays  = 5
)

type OrderLineInput struct {
	ProductID   string
	ProductName string
	PartNumber  string
	Price       decimal.Decimal
	Quantity    int
}

type CreateOrderInput struct {
	Items          []OrderLineInput
	AddressID      string
	DeliveryOption string
	PaymentMethod  string
	Notes          string
}

type OrderService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	historyRepo   repositories.OrderStatusHistoryRepository
	cartRepo      repositories.CartItemRepository
	addressRepo   repositories.AddressRepository
	publisher     EventPublisher
	now           func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	historyRepo repositories.OrderStatusHistoryRepository,
	cartRepo repositories.CartItemRepository,
	addressRepo repositories.AddressRepository,
	publisher EventPublisher,
) *OrderService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		historyRepo:   historyRepo,
		cartRepo:      cartRepo,
		addressRepo:   addressRepo,
		publisher:     publisher,
		now:           time.Now,
	}
}

func newOrderNumber(now time.Time) string {
	return "ACE" + now.Format("060102") + strings.ToUpper(uuid.New().String()[:6])
}

func newTrackingNumber() string {
	return "ACETRK" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

func estimatedDelivery(from time.Time, deliveryOption string) time.Time {
	if deliveryOption == models.DeliveryOptionFastTrack {
		return from.AddDate(0, 0, FastTrackDeliveryDays)
	}
	return from.AddDate(0, 0, StandardDeliveryDays)
}

func paymentStatusFor(method string) string {
	if method == models.PaymentMethodCOD {
		return models.PaymentStatusPending
	}
	return models.PaymentStatusPaid
}

// CreateOrder snapshots the submitted lines into an order. The order row, its
// items, the first history row and the cart purge commit together.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]calc.Line, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, calc.Line{Price: item.Price, Quantity: item.Quantity})
	}
	fastTrack := in.DeliveryOption == models.DeliveryOptionFastTrack
	totals := calc.CalculateTotals(lines, fastTrack)

	now := s.now()
	order := &models.Order{
		ID:                uuid.New().String(),
		OrderNumber:       newOrderNumber(now),
		UserID:            userID,
		Subtotal:          totals.Subtotal,
		TaxAmount:         totals.TaxAmount,
		DeliveryFee:       totals.DeliveryFee,
		TotalAmount:       totals.Total,
		DeliveryOption:    in.DeliveryOption,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     paymentStatusFor(in.PaymentMethod),
		Status:            models.OrderStatusConfirmed,
		TrackingNumber:    newTrackingNumber(),
		Notes:             in.Notes,
		EstimatedDelivery: estimatedDelivery(now, in.DeliveryOption),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address, err := s.resolveAddress(ctx, tx, userID, in.AddressID)
		if err != nil {
			return err
		}
		if address != nil {
			order.AddressID = &address.ID
			order.ShippingAddress = address.Snapshot()
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				PartNumber:  line.PartNumber,
				Price:       line.Price,
				Quantity:    line.Quantity,
				LineTotal:   calc.LineTotal(line.Price, line.Quantity),
				CreatedAt:   now,
			})
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := s.historyRepo.Create(ctx, tx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    models.OrderStatusConfirmed,
			Location:  CannedLocation(models.OrderStatusConfirmed),
			Note:      "Order placed",
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to record order status: %w", err)
		}

		if err := s.cartRepo.ClearForUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("OrderService.CreateOrder: rollback for user %s: %v", userID, err)
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(order.DeliveryOption).Inc()
	publishEvent(ctx, s.publisher, NewOrderEvent(EventOrderCreated, order, now))

	created, err := s.orderRepo.GetByID(ctx, nil, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}
	if created == nil {
		return nil, ErrOrderNotFound
	}
	created.ItemCount = len(created.OrderItems)
	return created, nil
}

// resolveAddress returns the requested address when it belongs to the user,
// otherwise the user's default address. A missing default is not an error.
func (s *OrderService) resolveAddress(ctx context.Context, tx *gorm.DB, userID, addressID string) (*models.Address, error) {
	if addressID != "" {
		address, err := s.addressRepo.FindByIDForUser(ctx, tx, addressID, userID)
		if err != nil {
			return nil, err
		}
		if address == nil {
			return nil, ErrAddressNotFound
		}
		return address, nil
	}
	return s.addressRepo.FindDefault(ctx, tx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context, userID, status string, limit, offset int) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.FindByUserPaginated(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return []models.Order{}, total, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	counts, err := s.orderItemRepo.CountByOrderIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count order items: %w", err)
	}
	for i := range orders {
		orders[i].ItemCount = counts[orders[i].ID]
	}
	return orders, total, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	order.ItemCount = len(order.OrderItems)
	return order, nil
}

// CancelOrder moves a confirmed or preparing order to cancelled and returns
// it. The refund amount is the order total.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID, reason string) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsCancellable() {
		return nil, ErrOrderNotCancellable
	}

	now := s.now()
	if reason == "" {
		reason = "Cancelled by customer"
	}
	updates := map[string]interface{}{
		"status":              models.OrderStatusCancelled,
		"cancelled_at":        now,
		"cancellation_reason": reason,
		"updated_at":          now,
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		updates["payment_status"] = models.PaymentStatusRefunded
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.orderRepo.UpdateIfStatusIn(ctx, tx, order.ID, models.CancellableStatuses, updates)
		if err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		if !ok {
			return ErrOrderNotCancellable
		}
		return s.historyRepo.Create(ctx, tx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    models.OrderStatusCancelled,
			Note:      reason,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason
	order.UpdatedAt = now
	if status, ok := updates["payment_status"].(string); ok {
		order.PaymentStatus = status
	}

	metrics.OrdersCancelled.Inc()
	publishEvent(ctx, s.publisher, NewOrderEvent(EventOrderCancelled, order, now))
	return order, nil
}
