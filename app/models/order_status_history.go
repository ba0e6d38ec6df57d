package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatusHistory struct {
	ID        string    `gorm:"size:36;not null;primaryKey" json:"id"`
	OrderID   string    `gorm:"size:36;not null;index" json:"order_id"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Location  string    `gorm:"size:255" json:"location,omitempty"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}
