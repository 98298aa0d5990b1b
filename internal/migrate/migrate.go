// Package migrate copies every record from the on-device store into the
// remote data store, preserving cross-entity references while the remote
// side renumbers identifiers.
package migrate

import (
	"context"
	"fmt"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"go.uber.org/zap"
)

// Source is the read side of a migration: the local record store.
type Source interface {
	Categories() ([]string, error)
	Suppliers() ([]model.Supplier, error)
	Products() ([]model.Product, error)
	Sales() ([]model.Sale, error)
	Expenses() ([]model.Expense, error)
	Deliveries() ([]model.Delivery, error)
}

// Target is the write side of a migration: the remote data store. Sales and
// deliveries go through the import variants so product quantities, already
// carried over on the product rows, are not double-counted.
type Target interface {
	EnsureCategory(ctx context.Context, name string) error
	SaveSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	SaveProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	ImportSale(ctx context.Context, s *model.Sale, items []model.SaleItem) (*model.Sale, error)
	SaveExpense(ctx context.Context, e *model.Expense) (*model.Expense, error)
	ImportDelivery(ctx context.Context, d *model.Delivery, items []model.DeliveryItem) (*model.Delivery, error)
}

// Migrator performs a one-shot copy from Source to Target.
//
// The run is strictly ordered: categories, suppliers, products, sales,
// expenses, deliveries. Later steps remap references through identifier maps
// built by earlier steps. The first failed write aborts the run; records
// written before the failure stay behind, and a re-run re-inserts everything
// (the procedure is not idempotent).
type Migrator struct {
	src Source
	dst Target
	log *zap.Logger
}

func New(src Source, dst Target, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{src: src, dst: dst, log: log}
}

// Run executes the migration. Identifier maps live only for the duration of
// the call.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.migrateCategories(ctx); err != nil {
		return fmt.Errorf("migrate categories: %w", err)
	}

	supplierIDs, err := m.migrateSuppliers(ctx)
	if err != nil {
		return fmt.Errorf("migrate suppliers: %w", err)
	}

	productIDs, err := m.migrateProducts(ctx, supplierIDs)
	if err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}

	if err := m.migrateSales(ctx, productIDs); err != nil {
		return fmt.Errorf("migrate sales: %w", err)
	}

	if err := m.migrateExpenses(ctx); err != nil {
		return fmt.Errorf("migrate expenses: %w", err)
	}

	if err := m.migrateDeliveries(ctx, supplierIDs, productIDs); err != nil {
		return fmt.Errorf("migrate deliveries: %w", err)
	}

	m.log.Info("migration complete")
	return nil
}

// migrateCategories copies category names. Categories are keyed by name, so
// no identifier remapping is needed.
func (m *Migrator) migrateCategories(ctx context.Context) error {
	categories, err := m.src.Categories()
	if err != nil {
		return err
	}
	for _, name := range categories {
		if err := m.dst.EnsureCategory(ctx, name); err != nil {
			return err
		}
	}
	m.log.Info("categories migrated", zap.Int("count", len(categories)))
	return nil
}

func (m *Migrator) migrateSuppliers(ctx context.Context) (*IDMap, error) {
	suppliers, err := m.src.Suppliers()
	if err != nil {
		return nil, err
	}
	ids := NewIDMap()
	for _, sp := range suppliers {
		saved, err := m.dst.SaveSupplier(ctx, &model.Supplier{
			Name:    sp.Name,
			Phone:   sp.Phone,
			Company: sp.Company,
		})
		if err != nil {
			return nil, err
		}
		if err := ids.Put(sp.ID, saved.ID); err != nil {
			return nil, err
		}
	}
	m.log.Info("suppliers migrated", zap.Int("count", ids.Len()))
	return ids, nil
}

// migrateProducts copies products, resolving each supplier reference through
// the supplier map. A reference that does not resolve is dropped: the product
// arrives without a supplier link. Quantities are copied as-is; the sales
// migrated in the next step must not decrement them again.
func (m *Migrator) migrateProducts(ctx context.Context, supplierIDs *IDMap) (*IDMap, error) {
	products, err := m.src.Products()
	if err != nil {
		return nil, err
	}
	ids := NewIDMap()
	for _, p := range products {
		var supplierID *string
		if p.SupplierID != nil {
			if mapped, ok := supplierIDs.Get(*p.SupplierID); ok {
				supplierID = &mapped
			}
		}
		saved, err := m.dst.SaveProduct(ctx, &model.Product{
			Name:         p.Name,
			Category:     p.Category,
			SKU:          p.SKU,
			BuyingPrice:  p.BuyingPrice,
			SellingPrice: p.SellingPrice,
			Quantity:     p.Quantity,
			ReorderLevel: p.ReorderLevel,
			SupplierID:   supplierID,
		})
		if err != nil {
			return nil, err
		}
		if err := ids.Put(p.ID, saved.ID); err != nil {
			return nil, err
		}
	}
	m.log.Info("products migrated", zap.Int("count", ids.Len()))
	return ids, nil
}

// migrateSales copies sale headers with their items, remapping item product
// references through the product map. An unmapped reference keeps the stale
// local identifier rather than losing the line.
func (m *Migrator) migrateSales(ctx context.Context, productIDs *IDMap) error {
	sales, err := m.src.Sales()
	if err != nil {
		return err
	}
	for _, sale := range sales {
		items := make([]model.SaleItem, 0, len(sale.Items))
		for _, item := range sale.Items {
			productID := item.ProductID
			if mapped, ok := productIDs.Get(productID); ok {
				productID = mapped
			}
			items = append(items, model.SaleItem{
				ProductID:   productID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Total:       item.Total,
			})
		}
		header := &model.Sale{
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			StaffID:       sale.StaffID,
			StaffName:     sale.StaffName,
			CustomerName:  sale.CustomerName,
			Reference:     sale.Reference,
			CreatedAt:     sale.CreatedAt,
		}
		if _, err := m.dst.ImportSale(ctx, header, items); err != nil {
			return err
		}
	}
	m.log.Info("sales migrated", zap.Int("count", len(sales)))
	return nil
}

func (m *Migrator) migrateExpenses(ctx context.Context) error {
	expenses, err := m.src.Expenses()
	if err != nil {
		return err
	}
	for _, e := range expenses {
		_, err := m.dst.SaveExpense(ctx, &model.Expense{
			Name:     e.Name,
			Amount:   e.Amount,
			Category: e.Category,
			Date:     e.Date,
			Notes:    e.Notes,
		})
		if err != nil {
			return err
		}
	}
	m.log.Info("expenses migrated", zap.Int("count", len(expenses)))
	return nil
}

// migrateDeliveries copies deliveries with their items. Supplier and product
// references resolve through the run's maps with the same fallback rules as
// sales: unmapped references keep the stale local identifier.
func (m *Migrator) migrateDeliveries(ctx context.Context, supplierIDs, productIDs *IDMap) error {
	deliveries, err := m.src.Deliveries()
	if err != nil {
		return err
	}
	for _, d := range deliveries {
		supplierID := d.SupplierID
		if mapped, ok := supplierIDs.Get(supplierID); ok {
			supplierID = mapped
		}
		items := make([]model.DeliveryItem, 0, len(d.Items))
		for _, item := range d.Items {
			productID := item.ProductID
			if mapped, ok := productIDs.Get(productID); ok {
				productID = mapped
			}
			items = append(items, model.DeliveryItem{
				ProductID:   productID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Cost:        item.Cost,
			})
		}
		header := &model.Delivery{
			SupplierID:   supplierID,
			SupplierName: d.SupplierName,
			Date:         d.Date,
			Cost:         d.Cost,
			Notes:        d.Notes,
			CreatedAt:    d.CreatedAt,
		}
		if _, err := m.dst.ImportDelivery(ctx, header, items); err != nil {
			return err
		}
	}
	m.log.Info("deliveries migrated", zap.Int("count", len(deliveries)))
	return nil
}
