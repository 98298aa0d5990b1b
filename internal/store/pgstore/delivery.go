package pgstore

import (
	"context"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
)

// Deliveries lists delivery headers, newest first.
func (s *Store) Deliveries(ctx context.Context) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	if err := s.db.WithContext(ctx).Order("date desc").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (s *Store) GetDelivery(ctx context.Context, id string) (*model.Delivery, error) {
	var d model.Delivery
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	items, err := s.DeliveryItems(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (s *Store) DeliveryItems(ctx context.Context, deliveryID string) ([]model.DeliveryItem, error) {
	var items []model.DeliveryItem
	if err := s.db.WithContext(ctx).Where("delivery_id = ?", deliveryID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveDelivery persists a stock receipt: the delivery header, its items, and
// an atomic quantity increment per item.
func (s *Store) SaveDelivery(ctx context.Context, d *model.Delivery, items []model.DeliveryItem) (*model.Delivery, error) {
	saved, err := s.insertDelivery(ctx, d, items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := s.AdjustProductQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// ImportDelivery writes a delivery header and items without touching product
// quantities, for replaying historical receipts.
func (s *Store) ImportDelivery(ctx context.Context, d *model.Delivery, items []model.DeliveryItem) (*model.Delivery, error) {
	return s.insertDelivery(ctx, d, items)
}

func (s *Store) insertDelivery(ctx context.Context, d *model.Delivery, items []model.DeliveryItem) (*model.Delivery, error) {
	db := s.db.WithContext(ctx)

	d.ID = ""
	d.Items = nil
	if err := db.Create(d).Error; err != nil {
		return nil, wrapErr(err)
	}

	for i := range items {
		items[i].ID = ""
		items[i].DeliveryID = d.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return nil, wrapErr(err)
		}
	}
	d.Items = items
	return d, nil
}

func (s *Store) DeleteDelivery(ctx context.Context, id string) error {
	db := s.db.WithContext(ctx)
	if err := db.Delete(&model.DeliveryItem{}, "delivery_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&model.Delivery{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
