package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an inventory item. Quantity is adjusted only by sale
// completion (decrement) and delivery receipt (increment).
type Product struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Category     string    `json:"category" gorm:"type:varchar(100)"`
	SKU          string    `json:"sku" gorm:"type:varchar(100);uniqueIndex"`
	BuyingPrice  float64   `json:"buying_price" gorm:"not null"`
	SellingPrice float64   `json:"selling_price" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"default:0"`
	ReorderLevel int       `json:"reorder_level" gorm:"default:0"`
	SupplierID   *string   `json:"supplier_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Category is a bare name label. The set of known categories grows implicitly
// when a product is saved with an unseen category.
type Category struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
