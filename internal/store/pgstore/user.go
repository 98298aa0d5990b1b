package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
)

// Users lists staff accounts ordered by name.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *model.User) (*model.User, error) {
	db := s.db.WithContext(ctx)

	if u.ID == "" {
		if err := db.Create(u).Error; err != nil {
			return nil, wrapErr(err)
		}
		return u, nil
	}

	u.UpdatedAt = time.Now()
	if err := db.Model(&model.User{}).Where("id = ?", u.ID).Updates(u).Error; err != nil {
		return nil, wrapErr(err)
	}
	return s.GetUser(ctx, u.ID)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Store profile. One row, upserted.

func (s *Store) GetStoreProfile(ctx context.Context) (*model.StoreProfile, error) {
	var p model.StoreProfile
	if err := s.db.WithContext(ctx).First(&p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

func (s *Store) SaveStoreProfile(ctx context.Context, p *model.StoreProfile) (*model.StoreProfile, error) {
	db := s.db.WithContext(ctx)

	existing, err := s.GetStoreProfile(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if err := db.Create(p).Error; err != nil {
			return nil, wrapErr(err)
		}
		return p, nil
	}

	p.ID = existing.ID
	p.UpdatedAt = time.Now()
	if err := db.Model(&model.StoreProfile{}).Where("id = ?", p.ID).Updates(p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return s.GetStoreProfile(ctx)
}
