package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a business expense with a free-text category.
type Expense struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"type:varchar(100)"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
