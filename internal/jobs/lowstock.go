// Package jobs holds the background tasks that run beside the HTTP server.
package jobs

import (
	"context"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store/pgstore"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"go.uber.org/zap"
)

// LowStockWatcher periodically refreshes the inventory gauges and logs
// products that have fallen to or below their reorder level.
type LowStockWatcher struct {
	store    *pgstore.Store
	interval time.Duration
	log      *zap.Logger
}

func NewLowStockWatcher(store *pgstore.Store, interval time.Duration, log *zap.Logger) *LowStockWatcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LowStockWatcher{store: store, interval: interval, log: log}
}

// Start runs the watcher until ctx is cancelled.
func (w *LowStockWatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check(ctx)
			}
		}
	}()
}

func (w *LowStockWatcher) check(ctx context.Context) {
	products, err := w.store.Products(ctx)
	if err != nil {
		w.log.Error("low stock check failed", zap.Error(err))
		return
	}

	low := 0
	for _, p := range products {
		prometheus.UpdateProductInventory(p.ID, p.Name, p.Category, float64(p.Quantity))
		if p.Quantity <= p.ReorderLevel {
			low++
			w.log.Warn("product at or below reorder level",
				zap.String("product_id", p.ID),
				zap.String("name", p.Name),
				zap.Int("quantity", p.Quantity),
				zap.Int("reorder_level", p.ReorderLevel))
		}
	}
	prometheus.LowStockGauge.Set(float64(low))
}
