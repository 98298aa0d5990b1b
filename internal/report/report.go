// Package report builds the sales, expenses, inventory and profit summaries
// and renders them as downloadable CSV.
package report

import (
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/gocarina/gocsv"
)

// SalesRow is one line of the sales report.
type SalesRow struct {
	Date          string  `csv:"Date"`
	Total         float64 `csv:"Total"`
	PaymentMethod string  `csv:"Payment Method"`
	Items         int     `csv:"Items"`
}

// ExpensesRow is one line of the expenses report.
type ExpensesRow struct {
	Date     string  `csv:"Date"`
	Name     string  `csv:"Name"`
	Category string  `csv:"Category"`
	Amount   float64 `csv:"Amount"`
}

// InventoryRow is one line of the inventory report.
type InventoryRow struct {
	Name         string  `csv:"Name"`
	SKU          string  `csv:"SKU"`
	Category     string  `csv:"Category"`
	Quantity     int     `csv:"Quantity"`
	BuyingPrice  float64 `csv:"Buying Price"`
	SellingPrice float64 `csv:"Selling Price"`
	ReorderLevel int     `csv:"Reorder Level"`
}

// ProfitRow is the single line of the profit report.
type ProfitRow struct {
	Period   string  `csv:"Period"`
	Sales    float64 `csv:"Sales"`
	Expenses float64 `csv:"Expenses"`
	Profit   float64 `csv:"Profit"`
}

const dateLayout = "2006-01-02"

// FilterSales keeps sales created within [from, to]. Zero bounds are open.
func FilterSales(sales []model.Sale, from, to time.Time) []model.Sale {
	var out []model.Sale
	for _, s := range sales {
		if inRange(s.CreatedAt, from, to) {
			out = append(out, s)
		}
	}
	return out
}

// FilterExpenses keeps expenses dated within [from, to]. Zero bounds are open.
func FilterExpenses(expenses []model.Expense, from, to time.Time) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// Totals sums sale totals and expense amounts; profit is their difference.
func Totals(sales []model.Sale, expenses []model.Expense) (salesTotal, expensesTotal, profit float64) {
	for _, s := range sales {
		salesTotal += s.Total
	}
	for _, e := range expenses {
		expensesTotal += e.Amount
	}
	return salesTotal, expensesTotal, salesTotal - expensesTotal
}

// SalesCSV renders the sales report. itemCounts maps sale id to line count.
func SalesCSV(sales []model.Sale, itemCounts map[string]int) (string, error) {
	rows := make([]SalesRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, SalesRow{
			Date:          s.CreatedAt.Format(dateLayout),
			Total:         s.Total,
			PaymentMethod: s.PaymentMethod,
			Items:         itemCounts[s.ID],
		})
	}
	return gocsv.MarshalString(&rows)
}

// ExpensesCSV renders the expenses report.
func ExpensesCSV(expenses []model.Expense) (string, error) {
	rows := make([]ExpensesRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpensesRow{
			Date:     e.Date.Format(dateLayout),
			Name:     e.Name,
			Category: e.Category,
			Amount:   e.Amount,
		})
	}
	return gocsv.MarshalString(&rows)
}

// InventoryCSV renders the inventory report.
func InventoryCSV(products []model.Product) (string, error) {
	rows := make([]InventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, InventoryRow{
			Name:         p.Name,
			SKU:          p.SKU,
			Category:     p.Category,
			Quantity:     p.Quantity,
			BuyingPrice:  p.BuyingPrice,
			SellingPrice: p.SellingPrice,
			ReorderLevel: p.ReorderLevel,
		})
	}
	return gocsv.MarshalString(&rows)
}

// ProfitCSV renders the single-line profit report for the given period label.
func ProfitCSV(period string, sales []model.Sale, expenses []model.Expense) (string, error) {
	salesTotal, expensesTotal, profit := Totals(sales, expenses)
	rows := []ProfitRow{{
		Period:   period,
		Sales:    salesTotal,
		Expenses: expensesTotal,
		Profit:   profit,
	}}
	return gocsv.MarshalString(&rows)
}
