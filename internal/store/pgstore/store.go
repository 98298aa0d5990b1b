package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"gorm.io/gorm"
)

// Store is the remote data store adapter, backed by PostgreSQL through GORM.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Models returns every table the store owns, in the order AutoMigrate
// should create them.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Expense{},
		&model.Delivery{},
		&model.DeliveryItem{},
		&model.StoreProfile{},
	}
}

func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}

// Product operations

// Products lists all products ordered by name.
func (s *Store) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// SaveProduct upserts a product. An id means update of the supplied fields
// with an updated_at stamp; no id means insert with a generated identifier.
// Saving a product with an unseen category also registers the category.
func (s *Store) SaveProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	db := s.db.WithContext(ctx)

	if p.Category != "" {
		if err := s.EnsureCategory(ctx, p.Category); err != nil {
			return nil, err
		}
	}

	if p.ID == "" {
		if err := db.Create(p).Error; err != nil {
			return nil, wrapErr(err)
		}
		return p, nil
	}

	p.UpdatedAt = time.Now()
	if err := db.Model(&model.Product{}).Where("id = ?", p.ID).Updates(p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AdjustProductQuantity applies a signed stock change as a single atomic
// update. Stock is allowed to go negative; oversells surface in reports
// instead of being silently clamped.
func (s *Store) AdjustProductQuantity(ctx context.Context, id string, delta int) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		}).Error
}

// Category operations

// Categories lists known category names in name order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&model.Category{}).
		Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// EnsureCategory registers a category name, exactly once.
func (s *Store) EnsureCategory(ctx context.Context, name string) error {
	var c model.Category
	return s.db.WithContext(ctx).
		Where(model.Category{Name: name}).
		FirstOrCreate(&c).Error
}

func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, "name = ?", name).Error
}

// Supplier operations

func (s *Store) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.WithContext(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	var sp model.Supplier
	if err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &sp, nil
}

func (s *Store) SaveSupplier(ctx context.Context, sp *model.Supplier) (*model.Supplier, error) {
	db := s.db.WithContext(ctx)

	if sp.ID == "" {
		if err := db.Create(sp).Error; err != nil {
			return nil, wrapErr(err)
		}
		return sp, nil
	}

	sp.UpdatedAt = time.Now()
	if err := db.Model(&model.Supplier{}).Where("id = ?", sp.ID).Updates(sp).Error; err != nil {
		return nil, wrapErr(err)
	}
	return s.GetSupplier(ctx, sp.ID)
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
