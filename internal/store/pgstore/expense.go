package pgstore

import (
	"context"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
)

// Expenses lists expenses, newest date first.
func (s *Store) Expenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := s.db.WithContext(ctx).Order("date desc").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *Store) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	var e model.Expense
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &e, nil
}

func (s *Store) SaveExpense(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	db := s.db.WithContext(ctx)

	if e.ID == "" {
		if err := db.Create(e).Error; err != nil {
			return nil, wrapErr(err)
		}
		return e, nil
	}

	if err := db.Model(&model.Expense{}).Where("id = ?", e.ID).Updates(e).Error; err != nil {
		return nil, wrapErr(err)
	}
	return s.GetExpense(ctx, e.ID)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
