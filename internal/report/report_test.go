package report

import (
	"strings"
	"testing"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFilterSalesRange(t *testing.T) {
	sales := []model.Sale{
		{ID: "early", CreatedAt: day(2025, 1, 5)},
		{ID: "inside", CreatedAt: day(2025, 2, 10)},
		{ID: "late", CreatedAt: day(2025, 3, 20)},
	}

	got := FilterSales(sales, day(2025, 2, 1), day(2025, 2, 28))
	require.Len(t, got, 1)
	assert.Equal(t, "inside", got[0].ID)

	// Zero bounds are open on that side.
	got = FilterSales(sales, time.Time{}, day(2025, 2, 28))
	assert.Len(t, got, 2)
	got = FilterSales(sales, day(2025, 2, 1), time.Time{})
	assert.Len(t, got, 2)
	got = FilterSales(sales, time.Time{}, time.Time{})
	assert.Len(t, got, 3)
}

func TestFilterExpensesUsesExpenseDate(t *testing.T) {
	expenses := []model.Expense{
		{Name: "inside", Date: day(2025, 2, 15)},
		{Name: "outside", Date: day(2025, 4, 1)},
	}
	got := FilterExpenses(expenses, day(2025, 2, 1), day(2025, 2, 28))
	require.Len(t, got, 1)
	assert.Equal(t, "inside", got[0].Name)
}

func TestTotals(t *testing.T) {
	sales := []model.Sale{{Total: 750}, {Total: 450}}
	expenses := []model.Expense{{Amount: 300}, {Amount: 150}}

	salesTotal, expensesTotal, profit := Totals(sales, expenses)
	assert.Equal(t, 1200.0, salesTotal)
	assert.Equal(t, 450.0, expensesTotal)
	assert.Equal(t, 750.0, profit)
}

func TestSalesCSV(t *testing.T) {
	sales := []model.Sale{
		{ID: "s1", Total: 750, PaymentMethod: model.PaymentCash, CreatedAt: day(2025, 11, 3)},
		{ID: "s2", Total: 180, PaymentMethod: model.PaymentMpesa, CreatedAt: day(2025, 11, 4)},
	}
	counts := map[string]int{"s1": 2, "s2": 1}

	csv, err := SalesCSV(sales, counts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Total,Payment Method,Items", lines[0])
	assert.Equal(t, "2025-11-03,750,cash,2", lines[1])
	assert.Equal(t, "2025-11-04,180,mpesa,1", lines[2])
}

func TestExpensesCSV(t *testing.T) {
	expenses := []model.Expense{
		{Name: "Rent", Category: "Rent", Amount: 5000, Date: day(2025, 11, 1)},
	}

	csv, err := ExpensesCSV(expenses)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Name,Category,Amount", lines[0])
	assert.Equal(t, "2025-11-01,Rent,Rent,5000", lines[1])
}

func TestInventoryCSV(t *testing.T) {
	products := []model.Product{
		{Name: "Hammer", SKU: "TL001", Category: "Tools", Quantity: 15, BuyingPrice: 300, SellingPrice: 450, ReorderLevel: 5},
	}

	csv, err := InventoryCSV(products)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,SKU,Category,Quantity,Buying Price,Selling Price,Reorder Level", lines[0])
	assert.Equal(t, "Hammer,TL001,Tools,15,300,450,5", lines[1])
}

func TestProfitCSV(t *testing.T) {
	sales := []model.Sale{{Total: 1200}}
	expenses := []model.Expense{{Amount: 450}}

	csv, err := ProfitCSV("2025-11-01 to 2025-11-30", sales, expenses)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Period,Sales,Expenses,Profit", lines[0])
	assert.Equal(t, "2025-11-01 to 2025-11-30,1200,450,750", lines[1])
}

func TestEmptyReportStillHasHeader(t *testing.T) {
	csv, err := SalesCSV(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Date,Total,Payment Method,Items", strings.TrimSpace(csv))
}
