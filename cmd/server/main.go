package main

import (
	"context"
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/handler"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/jobs"
	mid "github.com/RonnieLihanda/kipkaren-pos-flow/internal/middleware"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store/localstore"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store/pgstore"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/config"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/database"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/jwtutil"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; production environments set real env vars.
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting pos server",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)
	prometheus.InitMetrics(appConfig)

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	remote := pgstore.NewStore(database.GetDB())
	if err := database.MigrateModels(pgstore.Models()...); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	if created, err := remote.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	} else if created {
		log.Warn("Seeded default admin account; change its password on first login")
	}

	local, err := localstore.Open(appConfig.LocalStore.Path)
	if err != nil {
		log.Fatal("Failed to open local record store", zap.Error(err))
	}
	defer local.Close()
	log.Info("Local record store opened", zap.String("path", appConfig.LocalStore.Path))

	handler.Init(remote, local)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	jobs.NewLowStockWatcher(remote, 5*time.Minute, log).Start(ctx)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public auth routes
	e.POST("/api/auth/login", handler.Login)
	e.POST("/api/auth/register", handler.Register)

	// Authenticated routes
	api := e.Group("/api", mid.AuthMiddleware)
	api.GET("/auth/me", handler.Me)

	api.GET("/products", handler.ListProducts)
	api.GET("/products/:id", handler.GetProduct)
	api.POST("/products", handler.CreateProduct)
	api.PUT("/products/:id", handler.UpdateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)

	api.GET("/categories", handler.ListCategories)
	api.POST("/categories", handler.CreateCategory)
	api.DELETE("/categories/:name", handler.DeleteCategory)

	api.GET("/sales", handler.ListSales)
	api.GET("/sales/:id", handler.GetSale)
	api.POST("/sales", handler.CreateSale)

	// Admin-only routes: suppliers, deliveries, expenses, reports,
	// settings and the one-shot data migration.
	admin := api.Group("", mid.RequireAdmin)

	admin.DELETE("/sales/:id", handler.DeleteSale)

	admin.GET("/suppliers", handler.ListSuppliers)
	admin.GET("/suppliers/:id", handler.GetSupplier)
	admin.POST("/suppliers", handler.CreateSupplier)
	admin.PUT("/suppliers/:id", handler.UpdateSupplier)
	admin.DELETE("/suppliers/:id", handler.DeleteSupplier)

	admin.GET("/deliveries", handler.ListDeliveries)
	admin.GET("/deliveries/:id", handler.GetDelivery)
	admin.POST("/deliveries", handler.CreateDelivery)
	admin.DELETE("/deliveries/:id", handler.DeleteDelivery)

	admin.GET("/expenses", handler.ListExpenses)
	admin.POST("/expenses", handler.CreateExpense)
	admin.PUT("/expenses/:id", handler.UpdateExpense)
	admin.DELETE("/expenses/:id", handler.DeleteExpense)

	admin.GET("/reports/summary", handler.ReportSummary)
	admin.GET("/reports/export", handler.ExportReport)

	admin.GET("/settings/store", handler.GetStoreProfile)
	admin.PUT("/settings/store", handler.SaveStoreProfile)
	admin.GET("/settings/users", handler.ListUsers)
	admin.POST("/settings/users", handler.SaveUser)
	admin.DELETE("/settings/users/:id", handler.DeleteUser)
	admin.GET("/settings/backup", handler.ExportBackup)
	admin.POST("/settings/restore", handler.ImportBackup)

	admin.POST("/migration/run", handler.RunMigration)

	log.Info("Starting server", zap.String("port", appConfig.Server.Port))
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
