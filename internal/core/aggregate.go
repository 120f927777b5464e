package core

import "sort"

// Totals is the dashboard stat triplet for a set of transactions.
// Balance is always Income - Expense.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// ChartSeries is the chart-ready view of a set of transactions grouped
// by date: one label per distinct date in strictly ascending calendar
// order, with the income and expense sums (in cents) aligned by index.
// The ordering is a correctness requirement: the chart x-axis must be
// chronological.
type ChartSeries struct {
	Labels        []string `json:"labels"`
	IncomeSeries  []int64  `json:"incomeSeries"`
	ExpenseSeries []int64  `json:"expenseSeries"`
}

// FilterByMonth returns the transactions whose date falls in the given
// calendar month (1-12). A month of 0 means no filter and returns the
// input unchanged.
func FilterByMonth(records []Transaction, month int) []Transaction {
	if month == 0 {
		return records
	}
	var out []Transaction
	for _, t := range records {
		if t.Date.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// ComputeTotals sums TotalPrice per transaction type.
func ComputeTotals(records []Transaction) Totals {
	var income, expense Money
	for _, t := range records {
		switch t.Type {
		case Income:
			income = income.Add(t.TotalPrice)
		case Expense:
			expense = expense.Add(t.TotalPrice)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// GroupByDate buckets income and expense totals per distinct date.
// Labels are YYYY-MM-DD strings, so a lexical sort is a chronological
// sort.
func GroupByDate(records []Transaction) ChartSeries {
	type bucket struct {
		income  int64
		expense int64
	}
	grouped := make(map[string]*bucket)
	for _, t := range records {
		key := t.Date.String()
		b, ok := grouped[key]
		if !ok {
			b = &bucket{}
			grouped[key] = b
		}
		switch t.Type {
		case Income:
			b.income += t.TotalPrice.Cents
		case Expense:
			b.expense += t.TotalPrice.Cents
		}
	}

	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := ChartSeries{
		Labels:        dates,
		IncomeSeries:  make([]int64, len(dates)),
		ExpenseSeries: make([]int64, len(dates)),
	}
	for i, d := range dates {
		series.IncomeSeries[i] = grouped[d].income
		series.ExpenseSeries[i] = grouped[d].expense
	}
	return series
}

// SortNewestFirst returns a copy of records ordered by date descending,
// the display order of the transaction table. Store order itself has no
// meaning.
func SortNewestFirst(records []Transaction) []Transaction {
	out := append([]Transaction(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
