package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EquipmentStatusActive      = "active"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusInactive    = "inactive"
)

const DefaultServiceIntervalDays = 90

// Equipment is a machine owned by a customer.
type Equipment struct {
	ID                  string     `gorm:"size:36;not null;primaryKey" json:"id"`
	UserID              string     `gorm:"size:36;not null;index" json:"user_id"`
	Model               string     `gorm:"size:150;not null" json:"model"`
	SerialNumber        string     `gorm:"size:100;not null" json:"serial_number"`
	Category            string     `gorm:"size:100" json:"category,omitempty"`
	Status              string     `gorm:"size:20;not null" json:"status"`
	HoursUsed           int        `json:"hours_used"`
	PurchaseDate        *time.Time `json:"purchase_date,omitempty"`
	LastServiceDate     *time.Time `json:"last_service_date,omitempty"`
	NextServiceDate     *time.Time `json:"next_service_date,omitempty"`
	ServiceIntervalDays int        `gorm:"not null" json:"service_interval_days"`
	Notes               string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = EquipmentStatusActive
	}
	if e.ServiceIntervalDays <= 0 {
		e.ServiceIntervalDays = DefaultServiceIntervalDays
	}
	return
}
