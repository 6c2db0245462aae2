// Package report derives every aggregate statistic the dashboard, list and
// chart endpoints consume. All functions are pure: they take the current
// transaction collection, never mutate it, and are recomputed on every query.
package report

import (
	"sort"
	"strings"

	"financas/internal/core"
)

type (
	// Totals is the headline triple shown on the dashboard.
	Totals struct {
		Income  core.Money
		Expense core.Money
		Balance core.Money
	}

	// CategorySum is one expense category with its accumulated amount and
	// its share of the total expense (0 when there is no expense at all).
	CategorySum struct {
		Category string
		Sum      core.Money
		Share    float64
	}

	// MonthBucket accumulates one calendar month of activity.
	MonthBucket struct {
		Month   string // "YYYY-MM"
		Income  core.Money
		Expense core.Money
		Balance core.Money
	}

	// SortKey selects the column FilterAndSort orders by.
	SortKey string

	// SortOrder selects ascending or descending order.
	SortOrder string

	// Filter narrows the transaction list. Zero-valued fields match all.
	Filter struct {
		Query    string    // case-insensitive substring over description and tags
		Category string    // exact category match
		Kind     core.Kind // exact kind match
	}
)

const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
	SortByCategory    SortKey = "category"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ComputeTotals sums income and expense amounts; balance is income minus
// expense. Empty input yields all zeros.
func ComputeTotals(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Kind {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expense.Cents += tx.Amount.Cents
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// ExpenseByCategory groups expense-kind transactions by category.
// Categories with no expense transactions are omitted entirely. The result
// is ordered descending by sum, ties broken by category name ascending, so
// callers get a deterministic sequence.
func ExpenseByCategory(txs []core.Transaction) []CategorySum {
	sums := map[string]int64{}
	var totalExpense int64
	for _, tx := range txs {
		if tx.Kind != core.Expense {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
		totalExpense += tx.Amount.Cents
	}
	out := make([]CategorySum, 0, len(sums))
	for cat, cents := range sums {
		cs := CategorySum{Category: cat, Sum: core.Money{Cents: cents}}
		if totalExpense > 0 {
			cs.Share = float64(cents) / float64(totalExpense)
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum.Cents != out[j].Sum.Cents {
			return out[i].Sum.Cents > out[j].Sum.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategories truncates ExpenseByCategory to the first n entries.
func TopCategories(txs []core.Transaction, n int) []CategorySum {
	all := ExpenseByCategory(txs)
	if n < 0 {
		n = 0
	}
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// MonthlySeries buckets transactions by calendar year-month of OccurredOn and
// returns buckets in ascending key order. Months with no transactions are not
// synthesized; consumers must not assume contiguous months.
func MonthlySeries(txs []core.Transaction) []MonthBucket {
	byMonth := map[string]*MonthBucket{}
	for _, tx := range txs {
		key := tx.OccurredOn.YearMonth()
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthBucket{Month: key}
			byMonth[key] = bucket
		}
		switch tx.Kind {
		case core.Income:
			bucket.Income.Cents += tx.Amount.Cents
		case core.Expense:
			bucket.Expense.Cents += tx.Amount.Cents
		}
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		b := byMonth[k]
		b.Balance = b.Income.Sub(b.Expense)
		out = append(out, *b)
	}
	return out
}

// RecentN returns the n most recently dated transactions, newest first.
// Equal dates are broken by ID ascending so the order never depends on
// insertion order or sort stability.
func RecentN(txs []core.Transaction, n int) []core.Transaction {
	out := append([]core.Transaction(nil), txs...)
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].OccurredOn.Time, out[j].OccurredOn.Time
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].ID < out[j].ID
	})
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// FilterAndSort returns the subset of txs matching f, ordered by key and
// order. The input slice is never modified. The sort is a total order: equal
// keys fall back to ID ascending, which makes repeated application of the
// same key/order idempotent.
func FilterAndSort(txs []core.Transaction, f Filter, key SortKey, order SortOrder) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if matches(tx, f) {
			out = append(out, tx)
		}
	}
	sortTransactions(out, key, order)
	return out
}

func matches(tx core.Transaction, f Filter) bool {
	if f.Kind != "" && tx.Kind != f.Kind {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if strings.Contains(strings.ToLower(tx.Description), q) {
			return true
		}
		for _, tag := range tx.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	}
	return true
}

func sortTransactions(txs []core.Transaction, key SortKey, order SortOrder) {
	desc := order == Descending
	less := func(i, j int) bool {
		var cmp int
		switch key {
		case SortByAmount:
			cmp = compareInt64(txs[i].Amount.Cents, txs[j].Amount.Cents)
		case SortByDescription:
			cmp = strings.Compare(strings.ToLower(txs[i].Description), strings.ToLower(txs[j].Description))
		case SortByCategory:
			cmp = strings.Compare(strings.ToLower(txs[i].Category), strings.ToLower(txs[j].Category))
		default: // SortByDate
			di, dj := txs[i].OccurredOn.Time, txs[j].OccurredOn.Time
			switch {
			case di.Before(dj):
				cmp = -1
			case di.After(dj):
				cmp = 1
			}
		}
		if cmp == 0 {
			// ID tie-break keeps the order total regardless of direction.
			return txs[i].ID < txs[j].ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.Slice(txs, less)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
