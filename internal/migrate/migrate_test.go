package migrate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves fixed local data.
type fakeSource struct {
	categories []string
	suppliers  []model.Supplier
	products   []model.Product
	sales      []model.Sale
	expenses   []model.Expense
	deliveries []model.Delivery
}

func (f *fakeSource) Categories() ([]string, error)         { return f.categories, nil }
func (f *fakeSource) Suppliers() ([]model.Supplier, error)  { return f.suppliers, nil }
func (f *fakeSource) Products() ([]model.Product, error)    { return f.products, nil }
func (f *fakeSource) Sales() ([]model.Sale, error)          { return f.sales, nil }
func (f *fakeSource) Expenses() ([]model.Expense, error)    { return f.expenses, nil }
func (f *fakeSource) Deliveries() ([]model.Delivery, error) { return f.deliveries, nil }

// fakeTarget records every write, assigns fresh identifiers the way the
// remote store does, and logs the call sequence.
type fakeTarget struct {
	categories []string
	suppliers  []model.Supplier
	products   []model.Product
	sales      []model.Sale
	expenses   []model.Expense
	deliveries []model.Delivery
	calls      []string
	failOn     string
	nextID     int
}

func (f *fakeTarget) newID() string {
	f.nextID++
	return fmt.Sprintf("remote-%d", f.nextID)
}

func (f *fakeTarget) fail(op string) error {
	if f.failOn == op {
		return fmt.Errorf("%s refused", op)
	}
	return nil
}

func (f *fakeTarget) EnsureCategory(ctx context.Context, name string) error {
	f.calls = append(f.calls, "EnsureCategory")
	if err := f.fail("EnsureCategory"); err != nil {
		return err
	}
	f.categories = append(f.categories, name)
	return nil
}

func (f *fakeTarget) SaveSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	f.calls = append(f.calls, "SaveSupplier")
	if err := f.fail("SaveSupplier"); err != nil {
		return nil, err
	}
	saved := *s
	saved.ID = f.newID()
	f.suppliers = append(f.suppliers, saved)
	return &saved, nil
}

func (f *fakeTarget) SaveProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	f.calls = append(f.calls, "SaveProduct")
	if err := f.fail("SaveProduct"); err != nil {
		return nil, err
	}
	saved := *p
	saved.ID = f.newID()
	f.products = append(f.products, saved)
	return &saved, nil
}

func (f *fakeTarget) ImportSale(ctx context.Context, s *model.Sale, items []model.SaleItem) (*model.Sale, error) {
	f.calls = append(f.calls, "ImportSale")
	if err := f.fail("ImportSale"); err != nil {
		return nil, err
	}
	saved := *s
	saved.ID = f.newID()
	saved.Items = append([]model.SaleItem(nil), items...)
	f.sales = append(f.sales, saved)
	return &saved, nil
}

func (f *fakeTarget) SaveExpense(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	f.calls = append(f.calls, "SaveExpense")
	if err := f.fail("SaveExpense"); err != nil {
		return nil, err
	}
	saved := *e
	saved.ID = f.newID()
	f.expenses = append(f.expenses, saved)
	return &saved, nil
}

func (f *fakeTarget) ImportDelivery(ctx context.Context, d *model.Delivery, items []model.DeliveryItem) (*model.Delivery, error) {
	f.calls = append(f.calls, "ImportDelivery")
	if err := f.fail("ImportDelivery"); err != nil {
		return nil, err
	}
	saved := *d
	saved.ID = f.newID()
	saved.Items = append([]model.DeliveryItem(nil), items...)
	f.deliveries = append(f.deliveries, saved)
	return &saved, nil
}

func strPtr(s string) *string { return &s }

// testSource is a small but complete local dataset: one supplier referenced
// by a product, one sale and one delivery referencing that product.
func testSource() *fakeSource {
	soldAt := time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC)
	return &fakeSource{
		categories: []string{"Hardware"},
		suppliers: []model.Supplier{
			{ID: "S1", Name: "Acme", Phone: "0700000000", Company: "Acme Ltd"},
		},
		products: []model.Product{
			{ID: "P1", Name: "Bolt", Category: "Hardware", SKU: "HW001", BuyingPrice: 3, SellingPrice: 5, Quantity: 10, SupplierID: strPtr("S1")},
		},
		sales: []model.Sale{
			{
				ID: "L1", Total: 15, PaymentMethod: model.PaymentCash,
				StaffID: "1", StaffName: "Cashier", CreatedAt: soldAt,
				Items: []model.SaleItem{
					{ID: "LI1", SaleID: "L1", ProductID: "P1", ProductName: "Bolt", Quantity: 3, Price: 5, Total: 15},
				},
			},
		},
		expenses: []model.Expense{
			{ID: "E1", Name: "Rent", Amount: 5000, Category: "Rent", Date: soldAt},
		},
		deliveries: []model.Delivery{
			{
				ID: "D1", SupplierID: "S1", SupplierName: "Acme", Cost: 30, Date: soldAt,
				Items: []model.DeliveryItem{
					{ID: "DI1", DeliveryID: "D1", ProductID: "P1", ProductName: "Bolt", Quantity: 10, Cost: 30},
				},
			},
		},
	}
}

func TestRunRemapsReferences(t *testing.T) {
	src := testSource()
	dst := &fakeTarget{}
	require.NoError(t, New(src, dst, nil).Run(context.Background()))

	require.Len(t, dst.suppliers, 1)
	supplier := dst.suppliers[0]
	assert.NotEqual(t, "S1", supplier.ID)
	assert.Equal(t, "Acme", supplier.Name)

	require.Len(t, dst.products, 1)
	product := dst.products[0]
	assert.NotEqual(t, "P1", product.ID)
	require.NotNil(t, product.SupplierID)
	assert.Equal(t, supplier.ID, *product.SupplierID)
	// Quantities carry over on the product row; the imported sale and
	// delivery below must not adjust them again.
	assert.Equal(t, 10, product.Quantity)

	require.Len(t, dst.sales, 1)
	sale := dst.sales[0]
	assert.NotEqual(t, "L1", sale.ID)
	assert.Equal(t, 15.0, sale.Total)
	assert.Equal(t, src.sales[0].CreatedAt, sale.CreatedAt)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, product.ID, sale.Items[0].ProductID)
	assert.Equal(t, "Bolt", sale.Items[0].ProductName)

	require.Len(t, dst.deliveries, 1)
	delivery := dst.deliveries[0]
	assert.Equal(t, supplier.ID, delivery.SupplierID)
	require.Len(t, delivery.Items, 1)
	assert.Equal(t, product.ID, delivery.Items[0].ProductID)

	assert.Equal(t, []string{"Hardware"}, dst.categories)
	require.Len(t, dst.expenses, 1)
	assert.Equal(t, "Rent", dst.expenses[0].Name)
}

func TestRunStepOrder(t *testing.T) {
	dst := &fakeTarget{}
	require.NoError(t, New(testSource(), dst, nil).Run(context.Background()))

	order := map[string]int{
		"EnsureCategory": 0, "SaveSupplier": 1, "SaveProduct": 2,
		"ImportSale": 3, "SaveExpense": 4, "ImportDelivery": 5,
	}
	last := -1
	for _, call := range dst.calls {
		step, ok := order[call]
		require.True(t, ok, "unexpected call %s", call)
		assert.GreaterOrEqual(t, step, last, "call %s arrived out of order", call)
		if step > last {
			last = step
		}
	}
	assert.Equal(t, 5, last, "not every step ran")
}

func TestRunDropsUnmappedSupplierReference(t *testing.T) {
	src := &fakeSource{
		products: []model.Product{
			{ID: "P1", Name: "Orphan", SKU: "OR001", SupplierID: strPtr("S-gone")},
		},
	}
	dst := &fakeTarget{}
	require.NoError(t, New(src, dst, nil).Run(context.Background()))

	require.Len(t, dst.products, 1)
	assert.Nil(t, dst.products[0].SupplierID)
}

func TestRunKeepsStaleLineItemReferences(t *testing.T) {
	src := &fakeSource{
		sales: []model.Sale{
			{ID: "L1", Total: 5, PaymentMethod: model.PaymentCash, Items: []model.SaleItem{
				{ProductID: "P-gone", ProductName: "Deleted product", Quantity: 1, Price: 5, Total: 5},
			}},
		},
		deliveries: []model.Delivery{
			{ID: "D1", SupplierID: "S-gone", Items: []model.DeliveryItem{
				{ProductID: "P-gone", Quantity: 2, Cost: 6},
			}},
		},
	}
	dst := &fakeTarget{}
	require.NoError(t, New(src, dst, nil).Run(context.Background()))

	// The line survives with the stale local id rather than being dropped.
	require.Len(t, dst.sales, 1)
	require.Len(t, dst.sales[0].Items, 1)
	assert.Equal(t, "P-gone", dst.sales[0].Items[0].ProductID)

	require.Len(t, dst.deliveries, 1)
	assert.Equal(t, "S-gone", dst.deliveries[0].SupplierID)
	assert.Equal(t, "P-gone", dst.deliveries[0].Items[0].ProductID)
}

func TestProductsBeforeSuppliersLoseLinks(t *testing.T) {
	// Regression guard for the step order: with no supplier map built yet,
	// every product loses its supplier link.
	src := testSource()
	dst := &fakeTarget{}
	m := New(src, dst, nil)

	_, err := m.migrateProducts(context.Background(), NewIDMap())
	require.NoError(t, err)

	require.Len(t, dst.products, 1)
	assert.Nil(t, dst.products[0].SupplierID)
}

func TestRunIsNotIdempotent(t *testing.T) {
	src := testSource()
	dst := &fakeTarget{}
	m := New(src, dst, nil)

	require.NoError(t, m.Run(context.Background()))
	require.NoError(t, m.Run(context.Background()))

	// A second run re-inserts everything.
	assert.Len(t, dst.suppliers, 2)
	assert.Len(t, dst.products, 2)
	assert.Len(t, dst.sales, 2)
	assert.Len(t, dst.expenses, 2)
	assert.Len(t, dst.deliveries, 2)
	assert.Len(t, dst.categories, 2)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	src := testSource()
	dst := &fakeTarget{failOn: "SaveProduct"}

	err := New(src, dst, nil).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "migrate products")

	// Writes before the failure stay behind; nothing after it ran.
	assert.Len(t, dst.suppliers, 1)
	assert.Empty(t, dst.products)
	assert.Empty(t, dst.sales)
	assert.Empty(t, dst.expenses)
	assert.Empty(t, dst.deliveries)
}
