package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LoyaltyTransactionEarned   = "earned"
	LoyaltyTransactionRedeemed = "redeemed"
)

type LoyaltyAccount struct {
	ID             string    `gorm:"size:36;not null;primaryKey" json:"id"`
	UserID         string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	PointsBalance  int64     `gorm:"not null;default:0" json:"points_balance"`
	LifetimePoints int64     `gorm:"not null;default:0" json:"lifetime_points"`
	Tier           string    `gorm:"size:20;not null" json:"tier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (a *LoyaltyAccount) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

type LoyaltyTransaction struct {
	ID          string    `gorm:"size:36;not null;primaryKey" json:"id"`
	AccountID   string    `gorm:"size:36;not null;index" json:"account_id"`
	OrderID     *string   `gorm:"size:36" json:"order_id,omitempty"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Points      int64     `gorm:"not null" json:"points"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *LoyaltyTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
