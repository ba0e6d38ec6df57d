package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/models/migrations"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getTestDB opens a private in-memory database per test.
func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type fixture struct {
	db        *gorm.DB
	publisher *recordingPublisher

	products  repositories.ProductRepository
	orders    repositories.OrderRepository
	items     repositories.OrderItemRepository
	history   repositories.OrderStatusHistoryRepository
	cart      repositories.CartItemRepository
	wishlist  repositories.WishlistRepository
	addresses repositories.AddressRepository
	equipment repositories.EquipmentRepository
	dealers   repositories.DealerRepository
	loyalty   repositories.LoyaltyRepository
}

func newFixture(t *testing.T) *fixture {
	db := getTestDB(t)
	return &fixture{
		db:        db,
		publisher: &recordingPublisher{},
		products:  repositories.NewProductRepository(db),
		orders:    repositories.NewOrderRepository(db),
		items:     repositories.NewOrderItemRepository(db),
		history:   repositories.NewOrderStatusHistoryRepository(db),
		cart:      repositories.NewCartItemRepository(db),
		wishlist:  repositories.NewWishlistRepository(db),
		addresses: repositories.NewGormAddressRepository(db),
		equipment: repositories.NewEquipmentRepository(db),
		dealers:   repositories.NewDealerRepository(db),
		loyalty:   repositories.NewLoyaltyRepository(db),
	}
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.db, f.orders, f.items, f.history, f.cart, f.addresses, f.publisher)
}

func (f *fixture) loyaltyService() *LoyaltyService {
	return NewLoyaltyService(f.db, f.loyalty)
}

func (f *fixture) dealerService() *DealerService {
	return NewDealerService(f.db, f.dealers, f.orders, f.history, f.products, f.loyaltyService(), f.publisher, "₹")
}

func (f *fixture) product(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:          name,
		PartNumber:    "ACE-" + uuid.New().String()[:8],
		Category:      "Filters",
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		IsActive:      true,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) address(t *testing.T, userID string, isDefault bool) *models.Address {
	t.Helper()
	a := &models.Address{
		UserID:    userID,
		FullName:  "Ravi Kumar",
		Phone:     "9876543210",
		Line1:     "Plot 14, Sector 24",
		City:      "Faridabad",
		State:     "Haryana",
		Pincode:   "121005",
		IsDefault: isDefault,
	}
	require.NoError(t, f.addresses.Create(context.Background(), nil, a))
	return a
}

// placeOrder creates an order for one unit of each product.
func (f *fixture) placeOrder(t *testing.T, userID string, products ...*models.Product) *models.Order {
	t.Helper()
	in := CreateOrderInput{DeliveryOption: models.DeliveryOptionStandard, PaymentMethod: models.PaymentMethodCOD}
	for _, p := range products {
		in.Items = append(in.Items, OrderLineInput{
			ProductID:   p.ID,
			ProductName: p.Name,
			PartNumber:  p.PartNumber,
			Price:       p.Price,
			Quantity:    1,
		})
	}
	order, err := f.orderService().CreateOrder(context.Background(), userID, in)
	require.NoError(t, err)
	return order
}

func (f *fixture) dealerStocking(t *testing.T, userID string, products ...*models.Product) *models.Dealer {
	t.Helper()
	ctx := context.Background()
	dealer := &models.Dealer{UserID: userID, BusinessName: "Faridabad Earthmovers Spares"}
	require.NoError(t, f.dealers.Create(ctx, dealer))
	for _, p := range products {
		require.NoError(t, f.dealers.SaveInventoryItem(ctx, &models.DealerInventory{
			DealerID:     dealer.ID,
			ProductID:    p.ID,
			Quantity:     20,
			DealerPrice:  p.Price,
			ReorderLevel: 5,
		}))
	}
	return dealer
}

type recordingPublisher struct {
	events []OrderEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []string {
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Event)
	}
	return names
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
