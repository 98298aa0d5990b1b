package handler

import (
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/middleware"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SaleItemRequest is one checkout line.
type SaleItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price"`
}

// SaleRequest defines the structure for checkout requests. Customer name is
// required for credit sales, the payment reference for M-Pesa sales.
type SaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required"`
	CustomerName  string            `json:"customer_name"`
	Reference     string            `json:"reference"`
	Items         []SaleItemRequest `json:"items" validate:"required"`
}

// ListSales returns sale headers, newest first.
func ListSales(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	sales, err := remote.Sales(c.Request().Context())
	if err != nil {
		log.Error("Failed to list sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sales",
		})
	}

	return c.JSON(http.StatusOK, sales)
}

// GetSale returns a sale with its items.
func GetSale(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	sale, err := remote.GetSale(c.Request().Context(), id)
	if err != nil {
		log.Error("Sale not found", zap.String("sale_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Sale not found",
		})
	}

	return c.JSON(http.StatusOK, sale)
}

// CreateSale completes a checkout: validates the cart, snapshots product
// names and prices, persists the sale with its items and decrements stock.
func CreateSale(c echo.Context) error {
	log := logger.FromEcho(c)

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sale has no items"})
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
	}
	if req.PaymentMethod == model.PaymentCredit && req.CustomerName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer name is required for credit sales"})
	}
	if req.PaymentMethod == model.PaymentMpesa && req.Reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment reference is required for mpesa sales"})
	}

	ctx := c.Request().Context()

	// Resolve each line against the product catalog before any write.
	var total float64
	items := make([]model.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
		product, err := remote.GetProduct(ctx, line.ProductID)
		if err != nil {
			log.Warn("Unknown product in cart", zap.String("product_id", line.ProductID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product in cart"})
		}
		if product.Quantity < line.Quantity {
			log.Warn("Insufficient stock",
				zap.String("product_id", product.ID),
				zap.Int("in_stock", product.Quantity),
				zap.Int("requested", line.Quantity))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "insufficient stock for " + product.Name,
			})
		}
		price := line.Price
		if price == 0 {
			price = product.SellingPrice
		}
		lineTotal := price * float64(line.Quantity)
		total += lineTotal
		items = append(items, model.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       price,
			Total:       lineTotal,
		})
	}

	staffID, staffName, _ := middleware.SessionFromContext(c)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	sale, err := remote.SaveSale(ctx, &model.Sale{
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		StaffID:       staffID,
		StaffName:     staffName,
		CustomerName:  req.CustomerName,
		Reference:     req.Reference,
	}, items)
	if err != nil {
		log.Error("Failed to save sale", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to save sale",
		})
	}

	prometheus.RecordSale(sale.PaymentMethod, sale.Total)
	log.Info("Sale completed",
		zap.String("sale_id", sale.ID),
		zap.Float64("total", sale.Total),
		zap.String("payment_method", sale.PaymentMethod),
		zap.Int("items", len(items)))
	return c.JSON(http.StatusCreated, sale)
}

// DeleteSale removes a sale and its items. Stock is not restored.
func DeleteSale(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteSale(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete sale", zap.String("sale_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete sale",
		})
	}

	log.Info("Sale deleted", zap.String("sale_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Sale deleted successfully",
	})
}
