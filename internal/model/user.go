package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles. Admin unlocks expenses, reports, suppliers, deliveries,
// settings and the data migration; cashiers get checkout and inventory reads.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents a staff account.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:cashier"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role. There is no
// identity-based override: the stored role field is the only source.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
