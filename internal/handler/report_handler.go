package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/report"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportSummary returns sales/expenses/profit totals for a date range.
func ReportSummary(c echo.Context) error {
	log := logger.FromEcho(c)

	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	defer prometheus.TrackDBOperation("query")(time.Now())
	sales, err := remote.Sales(ctx)
	if err != nil {
		log.Error("Failed to load sales for report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
	}
	expenses, err := remote.Expenses(ctx)
	if err != nil {
		log.Error("Failed to load expenses for report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
	}

	filteredSales := report.FilterSales(sales, from, to)
	filteredExpenses := report.FilterExpenses(expenses, from, to)
	salesTotal, expensesTotal, profit := report.Totals(filteredSales, filteredExpenses)

	return c.JSON(http.StatusOK, echo.Map{
		"sales":    salesTotal,
		"expenses": expensesTotal,
		"profit":   profit,
		"counts": echo.Map{
			"sales":    len(filteredSales),
			"expenses": len(filteredExpenses),
		},
	})
}

// ExportReport renders a report as a downloadable CSV file. Supported types:
// sales, expenses, inventory, profit.
func ExportReport(c echo.Context) error {
	log := logger.FromEcho(c)

	reportType := c.QueryParam("type")
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	defer prometheus.TrackDBOperation("query")(time.Now())

	csv, err := buildExport(ctx, reportType, from, to)
	if err != nil {
		if errors.Is(err, errUnknownReportType) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown report type"})
		}
		log.Error("Failed to build report export", zap.String("type", reportType), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export report"})
	}

	filename := fmt.Sprintf("%s_report_%s.csv", reportType, time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	log.Info("Report exported", zap.String("type", reportType), zap.String("filename", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

var errUnknownReportType = errors.New("unknown report type")

// buildExport renders the requested report over [from, to].
func buildExport(ctx context.Context, reportType string, from, to time.Time) (string, error) {
	switch reportType {
	case "sales":
		sales, err := remote.Sales(ctx)
		if err != nil {
			return "", err
		}
		counts, err := remote.SaleItemCounts(ctx)
		if err != nil {
			return "", err
		}
		return report.SalesCSV(report.FilterSales(sales, from, to), counts)
	case "expenses":
		expenses, err := remote.Expenses(ctx)
		if err != nil {
			return "", err
		}
		return report.ExpensesCSV(report.FilterExpenses(expenses, from, to))
	case "inventory":
		products, err := remote.Products(ctx)
		if err != nil {
			return "", err
		}
		return report.InventoryCSV(products)
	case "profit":
		sales, err := remote.Sales(ctx)
		if err != nil {
			return "", err
		}
		expenses, err := remote.Expenses(ctx)
		if err != nil {
			return "", err
		}
		return report.ProfitCSV(periodLabel(from, to), report.FilterSales(sales, from, to), report.FilterExpenses(expenses, from, to))
	}
	return "", errUnknownReportType
}

func parseRange(c echo.Context) (from, to time.Time, err error) {
	if s := c.QueryParam("from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
	}
	if s := c.QueryParam("to"); s != "" {
		to, err = time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		// Make the upper bound inclusive of the whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func periodLabel(from, to time.Time) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all-time"
	case from.IsZero():
		return "until " + to.Format("2006-01-02")
	case to.IsZero():
		return "since " + from.Format("2006-01-02")
	default:
		return from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
	}
}
