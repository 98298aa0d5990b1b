package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DeliveryItemRequest is one received line on a delivery.
type DeliveryItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Cost      float64 `json:"cost"`
}

// DeliveryRequest defines the structure for recording a supplier delivery.
type DeliveryRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Date       string                `json:"date"`
	Notes      string                `json:"notes"`
	Items      []DeliveryItemRequest `json:"items" validate:"required"`
}

// ListDeliveries returns delivery headers, newest first.
func ListDeliveries(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	deliveries, err := remote.Deliveries(c.Request().Context())
	if err != nil {
		log.Error("Failed to list deliveries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve deliveries",
		})
	}

	return c.JSON(http.StatusOK, deliveries)
}

// GetDelivery returns a delivery with its items.
func GetDelivery(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	delivery, err := remote.GetDelivery(c.Request().Context(), id)
	if err != nil {
		log.Error("Delivery not found", zap.String("delivery_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Delivery not found",
		})
	}

	return c.JSON(http.StatusOK, delivery)
}

// CreateDelivery records a stock receipt: snapshots the supplier and product
// names, persists the delivery with its items and increments stock.
func CreateDelivery(c echo.Context) error {
	log := logger.FromEcho(c)

	var req DeliveryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.SupplierID == "" || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "supplier and at least one item are required",
		})
	}

	ctx := c.Request().Context()
	supplier, err := remote.GetSupplier(ctx, req.SupplierID)
	if err != nil {
		log.Warn("Unknown supplier for delivery", zap.String("supplier_id", req.SupplierID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown supplier"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	var totalCost float64
	items := make([]model.DeliveryItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
		product, err := remote.GetProduct(ctx, line.ProductID)
		if err != nil {
			log.Warn("Unknown product on delivery", zap.String("product_id", line.ProductID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product on delivery"})
		}
		totalCost += line.Cost
		items = append(items, model.DeliveryItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Cost:        line.Cost,
		})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	delivery, err := remote.SaveDelivery(ctx, &model.Delivery{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Date:         date,
		Cost:         totalCost,
		Notes:        req.Notes,
	}, items)
	if err != nil {
		log.Error("Failed to save delivery", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to save delivery",
		})
	}

	log.Info("Delivery recorded",
		zap.String("delivery_id", delivery.ID),
		zap.String("supplier", supplier.Name),
		zap.Float64("cost", delivery.Cost),
		zap.Int("items", len(items)))
	return c.JSON(http.StatusCreated, delivery)
}

// DeleteDelivery removes a delivery and its items. Stock is not rolled back.
func DeleteDelivery(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteDelivery(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Delivery not found",
			})
		}
		log.Error("Failed to delete delivery", zap.String("delivery_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete delivery",
		})
	}

	log.Info("Delivery deleted", zap.String("delivery_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Delivery deleted successfully",
	})
}
