package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// amounts go out as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            string          `gorm:"size:36;not null;primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	PartNumber    string          `gorm:"size:100;not null;uniqueIndex" json:"part_number"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      string          `gorm:"size:100;index" json:"category"`
	Brand         string          `gorm:"size:100" json:"brand"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	MRP           decimal.Decimal `gorm:"type:decimal(16,2)" json:"mrp"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	ImageURL      string          `gorm:"type:text" json:"image_url"`
	Rating        decimal.Decimal `gorm:"type:decimal(3,2)" json:"rating"`
	ReviewCount   int             `json:"review_count"`
	IsActive      bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
