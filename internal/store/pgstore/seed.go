package pgstore

import (
	"context"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// EnsureDefaultAdmin creates the starter admin account when the users table
// is empty, so a fresh install has a way in. The password should be changed
// on first login.
func (s *Store) EnsureDefaultAdmin(ctx context.Context) (created bool, err error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &model.User{
		Name:     "Admin",
		Email:    "admin@kipkarenhardware.com",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, wrapErr(err)
	}
	return true, nil
}
