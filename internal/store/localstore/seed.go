package localstore

import (
	"encoding/json"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

var defaultCategories = []string{
	"Cement", "Tools", "Plumbing", "Electrical", "Paint", "Hardware", "Other",
}

// seedDefaults loads starter rows into empty collections so a fresh install
// has accounts to log in with and stock to sell.
func seedDefaults(tx *bolt.Tx) error {
	now := time.Now()

	users := tx.Bucket([]byte(bucketUsers))
	if bucketEmpty(users) {
		adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		cashierHash, err := bcrypt.GenerateFromPassword([]byte("cashier123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		defaults := []model.User{
			{ID: "1", Name: "Admin", Email: "admin@kipkarenhardware.com", Role: model.RoleAdmin, Password: string(adminHash), CreatedAt: now, UpdatedAt: now},
			{ID: "2", Name: "Cashier", Email: "cashier@kipkarenhardware.com", Role: model.RoleCashier, Password: string(cashierHash), CreatedAt: now, UpdatedAt: now},
		}
		if err := putAllUsers(users, defaults); err != nil {
			return err
		}
	}

	categories := tx.Bucket([]byte(bucketCategories))
	if bucketEmpty(categories) {
		for _, name := range defaultCategories {
			if err := categories.Put([]byte(name), []byte(name)); err != nil {
				return err
			}
		}
	}

	suppliers := tx.Bucket([]byte(bucketSuppliers))
	if bucketEmpty(suppliers) {
		defaults := []model.Supplier{
			{ID: "1", Name: "John Supplier", Phone: "0700123456", Company: "Bamburi Distributors", CreatedAt: now, UpdatedAt: now},
			{ID: "2", Name: "Mary Supplier", Phone: "0711234567", Company: "Tools Supplier Ltd", CreatedAt: now, UpdatedAt: now},
			{ID: "3", Name: "Peter Supplier", Phone: "0722345678", Company: "Plumbing World", CreatedAt: now, UpdatedAt: now},
			{ID: "4", Name: "Susan Supplier", Phone: "0733456789", Company: "Electrical Supplies Kenya", CreatedAt: now, UpdatedAt: now},
			{ID: "5", Name: "Robert Supplier", Phone: "0744567890", Company: "Crown Paints", CreatedAt: now, UpdatedAt: now},
		}
		for i := range defaults {
			if err := putJSON(suppliers, defaults[i].ID, &defaults[i]); err != nil {
				return err
			}
		}
	}

	products := tx.Bucket([]byte(bucketProducts))
	if bucketEmpty(products) {
		supplier := func(id string) *string { return &id }
		defaults := []model.Product{
			{ID: "1", Name: "Bamburi Cement 50kg", Category: "Cement", SKU: "CEM001", BuyingPrice: 650, SellingPrice: 750, Quantity: 50, SupplierID: supplier("1"), ReorderLevel: 10, CreatedAt: now, UpdatedAt: now},
			{ID: "2", Name: "Hammer", Category: "Tools", SKU: "TL001", BuyingPrice: 300, SellingPrice: 450, Quantity: 15, SupplierID: supplier("2"), ReorderLevel: 5, CreatedAt: now, UpdatedAt: now},
			{ID: "3", Name: "PVC Pipe 1/2 inch", Category: "Plumbing", SKU: "PL001", BuyingPrice: 120, SellingPrice: 180, Quantity: 100, SupplierID: supplier("3"), ReorderLevel: 20, CreatedAt: now, UpdatedAt: now},
			{ID: "4", Name: "Light Bulb 60W", Category: "Electrical", SKU: "EL001", BuyingPrice: 50, SellingPrice: 100, Quantity: 30, SupplierID: supplier("4"), ReorderLevel: 10, CreatedAt: now, UpdatedAt: now},
			{ID: "5", Name: "Crown Paint 4L White", Category: "Paint", SKU: "PT001", BuyingPrice: 800, SellingPrice: 1200, Quantity: 10, SupplierID: supplier("5"), ReorderLevel: 3, CreatedAt: now, UpdatedAt: now},
		}
		for i := range defaults {
			if err := putJSON(products, defaults[i].ID, &defaults[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

func bucketEmpty(b *bolt.Bucket) bool {
	k, _ := b.Cursor().First()
	return k == nil
}

func putJSON(b *bolt.Bucket, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(id), data)
}

func putAllUsers(b *bolt.Bucket, users []model.User) error {
	for i := range users {
		if err := putJSON(b, users[i].ID, &users[i]); err != nil {
			return err
		}
	}
	return nil
}
