package pgstore

import (
	"context"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
)

// Sales lists sale headers, newest first.
func (s *Store) Sales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	var sale model.Sale
	if err := s.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	items, err := s.SaleItems(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (s *Store) SaleItems(ctx context.Context, saleID string) ([]model.SaleItem, error) {
	var items []model.SaleItem
	if err := s.db.WithContext(ctx).Where("sale_id = ?", saleID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaleItemCounts maps sale id to its number of line items.
func (s *Store) SaleItemCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		SaleID string
		Count  int
	}
	err := s.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select("sale_id, count(*) as count").
		Group("sale_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.SaleID] = r.Count
	}
	return counts, nil
}

// SaveSale persists a checkout: the sale header, its items, and an atomic
// quantity decrement per item. The three writes are independent; a header
// surviving a failed item insert stays behind as an orphan.
func (s *Store) SaveSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) (*model.Sale, error) {
	saved, err := s.insertSale(ctx, sale, items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := s.AdjustProductQuantity(ctx, item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// ImportSale writes a sale header and items without touching product
// quantities. Used when replaying historical sales whose stock effect is
// already reflected in the product rows.
func (s *Store) ImportSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) (*model.Sale, error) {
	return s.insertSale(ctx, sale, items)
}

func (s *Store) insertSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) (*model.Sale, error) {
	db := s.db.WithContext(ctx)

	sale.ID = ""
	sale.Items = nil
	if err := db.Create(sale).Error; err != nil {
		return nil, wrapErr(err)
	}

	for i := range items {
		items[i].ID = ""
		items[i].SaleID = sale.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return nil, wrapErr(err)
		}
	}
	sale.Items = items
	return sale, nil
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	db := s.db.WithContext(ctx)
	if err := db.Delete(&model.SaleItem{}, "sale_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&model.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
