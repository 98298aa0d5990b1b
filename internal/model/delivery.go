package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery is a stock receipt from a supplier. Cost must equal the sum of its
// items' costs. SupplierName is a snapshot taken at receipt time.
type Delivery struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	SupplierID   string         `json:"supplier_id" gorm:"type:varchar(100)"`
	SupplierName string         `json:"supplier_name" gorm:"type:varchar(255)"`
	Date         time.Time      `json:"date"`
	Cost         float64        `json:"cost" gorm:"not null"`
	Notes        string         `json:"notes,omitempty" gorm:"type:text"`
	Items        []DeliveryItem `json:"items,omitempty" gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DeliveryItem records the quantity and cost of one product received.
type DeliveryItem struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	DeliveryID  string    `json:"delivery_id" gorm:"type:uuid;index;not null"`
	ProductID   string    `json:"product_id" gorm:"type:varchar(100)"`
	ProductName string    `json:"product_name" gorm:"type:varchar(255)"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Cost        float64   `json:"cost" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *DeliveryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
