package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	PaymentMethodCOD        = "cod"
	PaymentMethodUPI        = "upi"
	PaymentMethodCard       = "card"
	PaymentMethodNetBanking = "netbanking"
)

const (
	DeliveryOptionStandard  = "standard"
	DeliveryOptionFastTrack = "fast_track"
)

// OrderStatusFlow is the forward path an order walks after checkout.
// Cancellation sits outside it.
var OrderStatusFlow = []string{
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// CancellableStatuses are the only statuses a customer may cancel from.
var CancellableStatuses = []string{OrderStatusConfirmed, OrderStatusPreparing}

type Order struct {
	ID                 string          `gorm:"size:36;not null;primaryKey" json:"id"`
	OrderNumber        string          `gorm:"size:32;not null;uniqueIndex" json:"order_number"`
	UserID             string          `gorm:"size:36;not null;index" json:"user_id"`
	AddressID          *string         `gorm:"size:36" json:"address_id"`
	Address            *Address        `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL" json:"address,omitempty"`
	ShippingAddress    ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"tax_amount"`
	DeliveryFee        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"delivery_fee"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	DeliveryOption     string          `gorm:"size:20;not null" json:"delivery_option"`
	PaymentMethod      string          `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus      string          `gorm:"size:20;not null" json:"payment_status"`
	Status             string          `gorm:"size:20;not null;index" json:"status"`
	TrackingNumber     string          `gorm:"size:32;not null;uniqueIndex" json:"tracking_number"`
	CourierName        string          `gorm:"size:100" json:"courier_name,omitempty"`
	CourierPhone       string          `gorm:"size:20" json:"courier_phone,omitempty"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason string          `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	EstimatedDelivery  time.Time       `json:"estimated_delivery"`

	OrderItems    []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
	ItemCount     int                  `gorm:"-" json:"item_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShippingAddress is the delivery address copied onto the order at checkout.
// It survives later edits or deletion of the address book entry.
type ShippingAddress struct {
	FullName string `gorm:"size:255" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Line1    string `gorm:"type:text" json:"line1"`
	Line2    string `gorm:"type:text" json:"line2,omitempty"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	Pincode  string `gorm:"size:10" json:"pincode"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) IsCancellable() bool {
	for _, s := range CancellableStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// StatusIndex returns the position of status in OrderStatusFlow, or -1.
func StatusIndex(status string) int {
	for i, s := range OrderStatusFlow {
		if s == status {
			return i
		}
	}
	return -1
}

// CanTransition reports whether an order may move from one flow status to
// another. Only forward moves are allowed.
func CanTransition(from, to string) bool {
	fromIdx, toIdx := StatusIndex(from), StatusIndex(to)
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx > fromIdx
}
