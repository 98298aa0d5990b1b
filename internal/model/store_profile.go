package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreProfile holds the shop's own details shown on receipts and reports.
// There is exactly one row; saves upsert it.
type StoreProfile struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	Owner     string    `json:"owner" gorm:"type:varchar(255)"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *StoreProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
