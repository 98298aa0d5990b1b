package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment methods accepted at checkout.
const (
	PaymentCash   = "cash"
	PaymentMpesa  = "mpesa"
	PaymentCredit = "credit"
)

// Sale is a checkout header. Total must equal the sum of its items' totals.
// StaffName is a snapshot taken at sale time.
type Sale struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	Total         float64    `json:"total" gorm:"not null"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(20);not null"`
	StaffID       string     `json:"staff_id" gorm:"type:varchar(100)"`
	StaffName     string     `json:"staff_name" gorm:"type:varchar(255)"`
	CustomerName  string     `json:"customer_name,omitempty" gorm:"type:varchar(255)"`
	Reference     string     `json:"reference,omitempty" gorm:"type:varchar(100)"`
	Items         []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SaleItem is a line on a sale. ProductName and Price are captured at sale
// time and are not kept in sync with later product edits.
type SaleItem struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	SaleID      string    `json:"sale_id" gorm:"type:uuid;index;not null"`
	ProductID   string    `json:"product_id" gorm:"type:varchar(100)"`
	ProductName string    `json:"product_name" gorm:"type:varchar(255)"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Total       float64   `json:"total" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentMpesa, PaymentCredit:
		return true
	}
	return false
}
