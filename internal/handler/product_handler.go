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

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category"`
	SKU          string  `json:"sku" validate:"required"`
	BuyingPrice  float64 `json:"buying_price"`
	SellingPrice float64 `json:"selling_price"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	SupplierID   *string `json:"supplier_id,omitempty"`
}

// ListProducts handles retrieving all products, ordered by name
func ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	products, err := remote.Products(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	product, err := remote.GetProduct(c.Request().Context(), id)
	if err != nil {
		log.Error("Product not found", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Name == "" || req.SKU == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name and sku are required",
		})
	}
	if req.BuyingPrice < 0 || req.SellingPrice < 0 || req.Quantity < 0 || req.ReorderLevel < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "prices and quantities must not be negative",
		})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.String("sku", req.SKU),
		zap.String("category", req.Category))

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product, err := remote.SaveProduct(c.Request().Context(), &model.Product{
		Name:         req.Name,
		Category:     req.Category,
		SKU:          req.SKU,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("Product with this SKU already exists", zap.String("sku", req.SKU))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product with this SKU already exists",
			})
		}
		log.Error("Failed to create product", zap.String("sku", req.SKU), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.UpdateProductInventory(product.ID, product.Name, product.Category, float64(product.Quantity))
	log.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product. Quantity edits through
// this path are admin corrections; normal stock movement happens on sale and
// delivery saves.
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	ctx := c.Request().Context()
	existing, err := remote.GetProduct(ctx, id)
	if err != nil {
		log.Error("Product not found for update", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	product, err := remote.SaveProduct(ctx, &model.Product{
		ID:           existing.ID,
		Name:         req.Name,
		Category:     req.Category,
		SKU:          req.SKU,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product with this SKU already exists",
			})
		}
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.UpdateProductInventory(product.ID, product.Name, product.Category, float64(product.Quantity))
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Product not found for deletion", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
