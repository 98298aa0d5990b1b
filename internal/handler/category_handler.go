package handler

import (
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCategories returns the known category names.
func ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	categories, err := remote.Categories(c.Request().Context())
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateCategory registers a category name explicitly. Categories also
// register implicitly when a product is saved with an unseen one.
func CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := remote.EnsureCategory(c.Request().Context(), req.Name); err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	log.Info("Category registered", zap.String("name", req.Name))
	return c.JSON(http.StatusCreated, echo.Map{"name": req.Name})
}

// DeleteCategory removes a category by name.
func DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	name := c.Param("name")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteCategory(c.Request().Context(), name); err != nil {
		log.Error("Failed to delete category", zap.String("name", name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete category",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Category deleted successfully",
	})
}
