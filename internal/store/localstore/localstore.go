package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names, one per collection.
const (
	bucketUsers      = "pos_users"
	bucketProducts   = "pos_products"
	bucketSuppliers  = "pos_suppliers"
	bucketSales      = "pos_sales"
	bucketExpenses   = "pos_expenses"
	bucketDeliveries = "pos_deliveries"
	bucketCategories = "pos_categories"
	bucketMeta       = "pos_meta"
)

var buckets = []string{
	bucketUsers, bucketProducts, bucketSuppliers, bucketSales,
	bucketExpenses, bucketDeliveries, bucketCategories, bucketMeta,
}

// Store is the on-device record store, backed by a bbolt file. Records are
// JSON rows keyed by id inside one bucket per collection.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store at path, creates the collection buckets
// and seeds default rows on first run.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return seedDefaults(tx)
	})
}

// put encodes v as JSON and stores it under id in the named bucket.
func (s *Store) put(bucket, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id), data)
	})
}

// get decodes the record stored under id into out. Malformed rows are
// rejected with store.ErrInvalidRecord rather than silently propagated.
func (s *Store) get(bucket, id string, out interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte(id))
		if data == nil {
			return store.ErrNotFound
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucket, id, err)
		}
		return nil
	})
}

func (s *Store) delete(bucket, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(id))
	})
}

// forEach decodes every row in the bucket via fn.
func (s *Store) forEach(bucket string, fn func(key, data []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(k, v []byte) error {
			return fn(k, v)
		})
	})
}

// Product operations

func (s *Store) Products() ([]model.Product, error) {
	var products []model.Product
	err := s.forEach(bucketProducts, func(k, v []byte) error {
		var p model.Product
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketProducts, k, err)
		}
		if p.ID == "" {
			return fmt.Errorf("%w: %s/%s: missing id", store.ErrInvalidRecord, bucketProducts, k)
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *Store) GetProduct(id string) (*model.Product, error) {
	var p model.Product
	if err := s.get(bucketProducts, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveProduct(p *model.Product) (*model.Product, error) {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := s.put(bucketProducts, p.ID, p); err != nil {
		return nil, err
	}
	if p.Category != "" {
		if err := s.SaveCategory(p.Category); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *Store) DeleteProduct(id string) error {
	return s.delete(bucketProducts, id)
}

// Supplier operations

func (s *Store) Suppliers() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := s.forEach(bucketSuppliers, func(k, v []byte) error {
		var sp model.Supplier
		if err := json.Unmarshal(v, &sp); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketSuppliers, k, err)
		}
		suppliers = append(suppliers, sp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return suppliers, nil
}

func (s *Store) GetSupplier(id string) (*model.Supplier, error) {
	var sp model.Supplier
	if err := s.get(bucketSuppliers, id, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Store) SaveSupplier(sp *model.Supplier) (*model.Supplier, error) {
	now := time.Now()
	if sp.ID == "" {
		sp.ID = uuid.NewString()
		sp.CreatedAt = now
	}
	sp.UpdatedAt = now
	if err := s.put(bucketSuppliers, sp.ID, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Store) DeleteSupplier(id string) error {
	return s.delete(bucketSuppliers, id)
}

// Sale operations. Local sales embed their items.

func (s *Store) Sales() ([]model.Sale, error) {
	var sales []model.Sale
	err := s.forEach(bucketSales, func(k, v []byte) error {
		var sale model.Sale
		if err := json.Unmarshal(v, &sale); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketSales, k, err)
		}
		sales = append(sales, sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return sales, nil
}

func (s *Store) GetSale(id string) (*model.Sale, error) {
	var sale model.Sale
	if err := s.get(bucketSales, id, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// SaveSale stores the sale with its embedded items and decrements the
// referenced products' quantities.
func (s *Store) SaveSale(sale *model.Sale) (*model.Sale, error) {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
		sale.CreatedAt = time.Now()
	}
	if err := s.put(bucketSales, sale.ID, sale); err != nil {
		return nil, err
	}
	for _, item := range sale.Items {
		if err := s.adjustQuantity(item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}
	return sale, nil
}

func (s *Store) DeleteSale(id string) error {
	return s.delete(bucketSales, id)
}

// Expense operations

func (s *Store) Expenses() ([]model.Expense, error) {
	var expenses []model.Expense
	err := s.forEach(bucketExpenses, func(k, v []byte) error {
		var e model.Expense
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketExpenses, k, err)
		}
		expenses = append(expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

func (s *Store) SaveExpense(e *model.Expense) (*model.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
		e.CreatedAt = time.Now()
	}
	if err := s.put(bucketExpenses, e.ID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) DeleteExpense(id string) error {
	return s.delete(bucketExpenses, id)
}

// Delivery operations. Local deliveries embed their items.

func (s *Store) Deliveries() ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := s.forEach(bucketDeliveries, func(k, v []byte) error {
		var d model.Delivery
		if err := json.Unmarshal(v, &d); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketDeliveries, k, err)
		}
		deliveries = append(deliveries, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(deliveries, func(i, j int) bool { return deliveries[i].Date.After(deliveries[j].Date) })
	return deliveries, nil
}

// SaveDelivery stores the delivery with its embedded items and increments the
// referenced products' quantities.
func (s *Store) SaveDelivery(d *model.Delivery) (*model.Delivery, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = time.Now()
	}
	if err := s.put(bucketDeliveries, d.ID, d); err != nil {
		return nil, err
	}
	for _, item := range d.Items {
		if err := s.adjustQuantity(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *Store) DeleteDelivery(id string) error {
	return s.delete(bucketDeliveries, id)
}

// Category operations. Categories are keyed by name, not id.

func (s *Store) Categories() ([]string, error) {
	var categories []string
	err := s.forEach(bucketCategories, func(k, v []byte) error {
		categories = append(categories, string(k))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) SaveCategory(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCategories)).Put([]byte(name), []byte(name))
	})
}

func (s *Store) DeleteCategory(name string) error {
	return s.delete(bucketCategories, name)
}

// User operations

func (s *Store) Users() ([]model.User, error) {
	var users []model.User
	err := s.forEach(bucketUsers, func(k, v []byte) error {
		var u model.User
		if err := json.Unmarshal(v, &u); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidRecord, bucketUsers, k, err)
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	users, err := s.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) SaveUser(u *model.User) (*model.User, error) {
	now := time.Now()
	if u.ID == "" {
		u.ID = uuid.NewString()
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if err := s.put(bucketUsers, u.ID, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Opaque blobs outside the entity collections: session marker, store profile.

func (s *Store) PutBlob(key string, v interface{}) error {
	return s.put(bucketMeta, key, v)
}

func (s *Store) GetBlob(key string, out interface{}) error {
	return s.get(bucketMeta, key, out)
}

func (s *Store) DeleteBlob(key string) error {
	return s.delete(bucketMeta, key)
}

// adjustQuantity applies a signed stock change to a product. Missing products
// are skipped, matching the lenient local-store behavior.
func (s *Store) adjustQuantity(productID string, delta int) error {
	var p model.Product
	err := s.get(bucketProducts, productID, &p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now()
	return s.put(bucketProducts, p.ID, &p)
}
