package localstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsDefaults(t *testing.T) {
	s := openTestStore(t)

	users, err := s.Users()
	require.NoError(t, err)
	require.Len(t, users, 2)

	admin, err := s.GetUserByEmail("admin@kipkarenhardware.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))

	categories, err := s.Categories()
	require.NoError(t, err)
	assert.Len(t, categories, 7)
	assert.Contains(t, categories, "Cement")

	suppliers, err := s.Suppliers()
	require.NoError(t, err)
	assert.Len(t, suppliers, 5)

	products, err := s.Products()
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestSeedRunsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pos.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveUser(&model.User{Name: "Extra", Email: "extra@example.com"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening must not re-seed on top of existing rows.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	users, err := s.Users()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestSaveProductAssignsIDAndCategory(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveProduct(&model.Product{
		Name: "Wheelbarrow", Category: "Garden", SKU: "GD001",
		BuyingPrice: 2000, SellingPrice: 2800, Quantity: 4, ReorderLevel: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	// The unseen category is registered implicitly.
	categories, err := s.Categories()
	require.NoError(t, err)
	assert.Contains(t, categories, "Garden")

	got, err := s.GetProduct(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wheelbarrow", got.Name)

	// Saving with the same id overwrites in place.
	got.SellingPrice = 3000
	_, err = s.SaveProduct(got)
	require.NoError(t, err)
	again, err := s.GetProduct(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, again.SellingPrice)
}

func TestGetProductNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetProduct("no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveSaleDecrementsStock(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveProduct(&model.Product{Name: "Nails 1kg", SKU: "NL001", Quantity: 20})
	require.NoError(t, err)

	sale, err := s.SaveSale(&model.Sale{
		Total: 300, PaymentMethod: model.PaymentCash,
		Items: []model.SaleItem{{ProductID: p.ID, ProductName: p.Name, Quantity: 3, Price: 100, Total: 300}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Quantity)
}

func TestSaveSaleSkipsMissingProduct(t *testing.T) {
	s := openTestStore(t)

	// A sale line pointing at a deleted product still records the sale.
	_, err := s.SaveSale(&model.Sale{
		Total: 50, PaymentMethod: model.PaymentCash,
		Items: []model.SaleItem{{ProductID: "gone", Quantity: 1, Price: 50, Total: 50}},
	})
	require.NoError(t, err)

	sales, err := s.Sales()
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestSaveDeliveryIncrementsStock(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveProduct(&model.Product{Name: "Padlock", SKU: "PD001", Quantity: 5})
	require.NoError(t, err)

	_, err = s.SaveDelivery(&model.Delivery{
		SupplierID: "1", SupplierName: "John Supplier", Date: time.Now(), Cost: 900,
		Items: []model.DeliveryItem{{ProductID: p.ID, ProductName: p.Name, Quantity: 12, Cost: 900}},
	})
	require.NoError(t, err)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Quantity)
}

func TestQuantityConservation(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveProduct(&model.Product{Name: "Binding Wire", SKU: "BW001", Quantity: 40})
	require.NoError(t, err)

	sell := func(qty int) {
		_, err := s.SaveSale(&model.Sale{
			Total: float64(qty), PaymentMethod: model.PaymentCash,
			Items: []model.SaleItem{{ProductID: p.ID, Quantity: qty, Price: 1, Total: float64(qty)}},
		})
		require.NoError(t, err)
	}
	receive := func(qty int) {
		_, err := s.SaveDelivery(&model.Delivery{
			SupplierID: "1", Date: time.Now(), Cost: float64(qty),
			Items: []model.DeliveryItem{{ProductID: p.ID, Quantity: qty, Cost: float64(qty)}},
		})
		require.NoError(t, err)
	}

	// Interleaved movements: 40 - 5 + 20 - 12 - 3 + 7 = 47.
	sell(5)
	receive(20)
	sell(12)
	sell(3)
	receive(7)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, got.Quantity)
}

func TestSalesSortedNewestFirst(t *testing.T) {
	s := openTestStore(t)

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.SaveSale(&model.Sale{ID: "a", Total: 1, PaymentMethod: model.PaymentCash, CreatedAt: old})
	require.NoError(t, err)
	_, err = s.SaveSale(&model.Sale{ID: "b", Total: 2, PaymentMethod: model.PaymentCash, CreatedAt: recent})
	require.NoError(t, err)

	sales, err := s.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "b", sales[0].ID)
	assert.Equal(t, "a", sales[1].ID)
}

func TestMalformedRecordRejected(t *testing.T) {
	s := openTestStore(t)

	// Plant a corrupt row behind the typed API's back.
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketProducts)).Put([]byte("bad"), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = s.GetProduct("bad")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	_, err = s.Products()
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

func TestCategoryLifecycle(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveCategory("Roofing"))
	require.NoError(t, s.SaveCategory("Roofing")) // idempotent by name

	categories, err := s.Categories()
	require.NoError(t, err)
	count := 0
	for _, c := range categories {
		if c == "Roofing" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.NoError(t, s.DeleteCategory("Roofing"))
	categories, err = s.Categories()
	require.NoError(t, err)
	assert.NotContains(t, categories, "Roofing")
}

func TestExpenseLifecycle(t *testing.T) {
	s := openTestStore(t)

	e, err := s.SaveExpense(&model.Expense{Name: "Electricity", Amount: 2400, Category: "Utilities", Date: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	expenses, err := s.Expenses()
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	require.NoError(t, s.DeleteExpense(e.ID))
	expenses, err = s.Expenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestBlobRoundTrip(t *testing.T) {
	s := openTestStore(t)

	profile := model.StoreProfile{Name: "Kipkaren Hardware", Phone: "0712345678", Owner: "Ronnie"}
	require.NoError(t, s.PutBlob("store_profile", &profile))

	var got model.StoreProfile
	require.NoError(t, s.GetBlob("store_profile", &got))
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.Owner, got.Owner)

	require.NoError(t, s.DeleteBlob("store_profile"))
	err := s.GetBlob("store_profile", &got)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
