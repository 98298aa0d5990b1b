package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/migrate"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetStoreProfile returns the shop's own details.
func GetStoreProfile(c echo.Context) error {
	profile, err := remote.GetStoreProfile(c.Request().Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusOK, model.StoreProfile{})
		}
		logger.FromEcho(c).Error("Failed to load store profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load store profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// SaveStoreProfile upserts the shop's own details.
func SaveStoreProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Owner   string `json:"owner"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	profile, err := remote.SaveStoreProfile(c.Request().Context(), &model.StoreProfile{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Owner:   req.Owner,
	})
	if err != nil {
		log.Error("Failed to save store profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save store profile"})
	}

	log.Info("Store profile saved", zap.String("name", profile.Name))
	return c.JSON(http.StatusOK, profile)
}

// ListUsers returns staff accounts.
func ListUsers(c echo.Context) error {
	users, err := remote.Users(c.Request().Context())
	if err != nil {
		logger.FromEcho(c).Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}
	return c.JSON(http.StatusOK, users)
}

// SaveUser creates or updates a staff account.
func SaveUser(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if req.Role != "" && req.Role != model.RoleAdmin && req.Role != model.RoleCashier {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	if req.ID == "" && req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required for new accounts"})
	}

	user := &model.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save user"})
		}
		user.Password = string(hashed)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	saved, err := remote.SaveUser(c.Request().Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		log.Error("Failed to save user", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save user"})
	}

	log.Info("User saved", zap.String("user_id", saved.ID), zap.String("role", saved.Role))
	return c.JSON(http.StatusOK, saved)
}

// DeleteUser removes a staff account. The caller cannot delete themselves.
func DeleteUser(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if callerID, _ := c.Get("user_id").(string); callerID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete your own account"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	log.Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// backupPayload is the JSON shape of a full data export.
type backupPayload struct {
	ExportedAt time.Time        `json:"exported_at"`
	Categories []string         `json:"categories"`
	Suppliers  []model.Supplier `json:"suppliers"`
	Products   []model.Product  `json:"products"`
	Sales      []model.Sale     `json:"sales"`
	Expenses   []model.Expense  `json:"expenses"`
	Deliveries []model.Delivery `json:"deliveries"`
}

// ExportBackup dumps every entity collection as one JSON document.
func ExportBackup(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()

	payload := backupPayload{ExportedAt: time.Now()}
	var err error
	if payload.Categories, err = remote.Categories(ctx); err == nil {
		if payload.Suppliers, err = remote.Suppliers(ctx); err == nil {
			if payload.Products, err = remote.Products(ctx); err == nil {
				if payload.Sales, err = remote.Sales(ctx); err == nil {
					if payload.Expenses, err = remote.Expenses(ctx); err == nil {
						payload.Deliveries, err = remote.Deliveries(ctx)
					}
				}
			}
		}
	}
	if err != nil {
		log.Error("Failed to build backup", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build backup"})
	}

	for i := range payload.Sales {
		items, err := remote.SaleItems(ctx, payload.Sales[i].ID)
		if err != nil {
			log.Error("Failed to load sale items for backup", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build backup"})
		}
		payload.Sales[i].Items = items
	}
	for i := range payload.Deliveries {
		items, err := remote.DeliveryItems(ctx, payload.Deliveries[i].ID)
		if err != nil {
			log.Error("Failed to load delivery items for backup", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build backup"})
		}
		payload.Deliveries[i].Items = items
	}

	log.Info("Backup exported",
		zap.Int("products", len(payload.Products)),
		zap.Int("sales", len(payload.Sales)))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="pos_backup_`+time.Now().Format("2006-01-02")+`.json"`)
	return c.JSON(http.StatusOK, payload)
}

// backupSource adapts an uploaded backup document to the migration engine's
// read side, so a restore reuses the same remapping and import rules.
type backupSource struct {
	payload backupPayload
}

func (b *backupSource) Categories() ([]string, error)         { return b.payload.Categories, nil }
func (b *backupSource) Suppliers() ([]model.Supplier, error)  { return b.payload.Suppliers, nil }
func (b *backupSource) Products() ([]model.Product, error)    { return b.payload.Products, nil }
func (b *backupSource) Sales() ([]model.Sale, error)          { return b.payload.Sales, nil }
func (b *backupSource) Expenses() ([]model.Expense, error)    { return b.payload.Expenses, nil }
func (b *backupSource) Deliveries() ([]model.Delivery, error) { return b.payload.Deliveries, nil }

// ImportBackup loads a previously exported backup document into the remote
// store. Like the migration it re-inserts everything: restoring into a
// non-empty store duplicates records.
func ImportBackup(c echo.Context) error {
	log := logger.FromEcho(c)

	var payload backupPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid backup document"})
	}

	m := migrate.New(&backupSource{payload: payload}, remote, log)
	if err := m.Run(c.Request().Context()); err != nil {
		log.Error("Backup restore failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Restore failed; records written before the failure were kept",
		})
	}

	log.Info("Backup restored",
		zap.Int("products", len(payload.Products)),
		zap.Int("sales", len(payload.Sales)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Backup restored"})
}
