package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DealerStatusActive    = "active"
	DealerStatusSuspended = "suspended"
)

type Dealer struct {
	ID           string    `gorm:"size:36;not null;primaryKey" json:"id"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	BusinessName string    `gorm:"size:255;not null" json:"business_name"`
	GSTNumber    string    `gorm:"size:20" json:"gst_number,omitempty"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	City         string    `gorm:"size:100" json:"city,omitempty"`
	State        string    `gorm:"size:100" json:"state,omitempty"`
	Status       string    `gorm:"size:20;not null" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d *Dealer) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = DealerStatusActive
	}
	return
}

type DealerInventory struct {
	ID           string          `gorm:"size:36;not null;primaryKey" json:"id"`
	DealerID     string          `gorm:"size:36;not null;uniqueIndex:idx_dealer_product" json:"dealer_id"`
	ProductID    string          `gorm:"size:36;not null;uniqueIndex:idx_dealer_product" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	DealerPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"dealer_price"`
	ReorderLevel int             `gorm:"not null" json:"reorder_level"`
	LowStock     bool            `gorm:"-" json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (DealerInventory) TableName() string {
	return "dealer_inventories"
}

func (di *DealerInventory) BeforeCreate(tx *gorm.DB) (err error) {
	if di.ID == "" {
		di.ID = uuid.New().String()
	}
	return
}

func (di *DealerInventory) IsLowStock() bool {
	return di.Quantity <= di.ReorderLevel
}

type DealerOffer struct {
	ID              string          `gorm:"size:36;not null;primaryKey" json:"id"`
	DealerID        string          `gorm:"size:36;not null;index" json:"dealer_id"`
	ProductID       *string         `gorm:"size:36" json:"product_id,omitempty"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *DealerOffer) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// IsLive reports whether the offer is active and inside its validity window.
func (o *DealerOffer) IsLive(now time.Time) bool {
	return o.IsActive && !now.Before(o.ValidFrom) && !now.After(o.ValidUntil)
}
