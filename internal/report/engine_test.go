package report

import (
	"testing"

	"financas/internal/core"
)

func tx(kind core.Kind, cents int64, desc, cat string, date string, tags ...string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.NewTransaction(kind, core.Money{Cents: cents}, desc, cat, d, tags)
}

// sampleMonth mirrors the demonstration records: one salary, rent, groceries
// and a freelance payment, all in January 2025.
func sampleMonth() []core.Transaction {
	return []core.Transaction{
		tx(core.Income, 500000, "Salário", "Salário", "2025-01-01"),
		tx(core.Expense, 120000, "Aluguel", "Moradia", "2025-01-02"),
		tx(core.Expense, 35000, "Mercado", "Alimentação", "2025-01-03"),
		tx(core.Income, 80000, "Freelance", "Freelance", "2025-01-04"),
	}
}

func TestComputeTotalsScenario(t *testing.T) {
	got := ComputeTotals(sampleMonth())
	if got.Income.Cents != 580000 {
		t.Errorf("income = %d, want 580000", got.Income.Cents)
	}
	if got.Expense.Cents != 155000 {
		t.Errorf("expense = %d, want 155000", got.Expense.Cents)
	}
	if got.Balance.Cents != 425000 {
		t.Errorf("balance = %d, want 425000", got.Balance.Cents)
	}
}

func TestComputeTotalsBalanceIdentity(t *testing.T) {
	cases := [][]core.Transaction{
		sampleMonth(),
		{tx(core.Expense, 1, "Café", "Alimentação", "2024-06-10")},
		{tx(core.Income, 99999, "Bônus", "Salário", "2024-12-31")},
	}
	for _, txs := range cases {
		got := ComputeTotals(txs)
		if got.Balance.Cents != got.Income.Cents-got.Expense.Cents {
			t.Fatalf("balance %d != income %d - expense %d", got.Balance.Cents, got.Income.Cents, got.Expense.Cents)
		}
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.Balance.Cents != 0 {
		t.Fatalf("expected all zeros, got %+v", got)
	}
}

func TestExpenseByCategory(t *testing.T) {
	got := ExpenseByCategory(sampleMonth())
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != "Moradia" || got[0].Sum.Cents != 120000 {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Category != "Alimentação" || got[1].Sum.Cents != 35000 {
		t.Errorf("second entry = %+v", got[1])
	}
	// Income categories never show up.
	for _, cs := range got {
		if cs.Category == "Salário" || cs.Category == "Freelance" {
			t.Errorf("income category leaked into expense grouping: %s", cs.Category)
		}
	}
	// Sums add up to the expense total.
	var sum int64
	for _, cs := range got {
		sum += cs.Sum.Cents
	}
	if want := ComputeTotals(sampleMonth()).Expense.Cents; sum != want {
		t.Errorf("category sums = %d, want %d", sum, want)
	}
}

func TestExpenseByCategoryShares(t *testing.T) {
	got := ExpenseByCategory(sampleMonth())
	var total float64
	for _, cs := range got {
		total += cs.Share
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("shares sum to %f, want ~1", total)
	}

	// No expense at all: shares must be zero, never a division fault.
	onlyIncome := []core.Transaction{tx(core.Income, 100, "Pix", "Salário", "2025-02-01")}
	if got := ExpenseByCategory(onlyIncome); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}

func TestTopCategories(t *testing.T) {
	txs := append(sampleMonth(),
		tx(core.Expense, 120000, "Condomínio", "Contas", "2025-01-05"),
		tx(core.Expense, 5000, "Ônibus", "Transporte", "2025-01-06"),
	)

	got := TopCategories(txs, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Contas and Moradia tie at 120000; alphabetical ascending breaks it.
	if got[0].Category != "Contas" || got[1].Category != "Moradia" {
		t.Errorf("tie-break order wrong: %s, %s", got[0].Category, got[1].Category)
	}

	// Strictly non-increasing sums.
	all := TopCategories(txs, 100)
	for i := 1; i < len(all); i++ {
		if all[i].Sum.Cents > all[i-1].Sum.Cents {
			t.Errorf("not sorted descending at %d: %v", i, all)
		}
	}
	if len(all) != 4 {
		t.Errorf("length = %d, want min(n, distinct) = 4", len(all))
	}
	if got := TopCategories(nil, 5); len(got) != 0 {
		t.Errorf("empty input should yield empty result, got %v", got)
	}
}

func TestMonthlySeries(t *testing.T) {
	got := MonthlySeries(sampleMonth())
	if len(got) != 1 {
		t.Fatalf("expected a single bucket, got %d", len(got))
	}
	b := got[0]
	if b.Month != "2025-01" {
		t.Errorf("bucket key = %q, want 2025-01", b.Month)
	}
	if b.Income.Cents != 580000 || b.Expense.Cents != 155000 || b.Balance.Cents != 425000 {
		t.Errorf("bucket = %+v", b)
	}
}

func TestMonthlySeriesOrderingAndGaps(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Expense, 100, "Café", "Alimentação", "2025-03-10"),
		tx(core.Income, 200, "Pix", "Salário", "2024-11-05"),
		tx(core.Expense, 300, "Luz", "Contas", "2025-01-20"),
	}
	got := MonthlySeries(txs)
	want := []string{"2024-11", "2025-01", "2025-03"}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i, b := range got {
		if b.Month != want[i] {
			t.Errorf("bucket %d = %q, want %q", i, b.Month, want[i])
		}
		if b.Balance.Cents != b.Income.Cents-b.Expense.Cents {
			t.Errorf("bucket %s balance identity broken: %+v", b.Month, b)
		}
	}
	if got := MonthlySeries(nil); len(got) != 0 {
		t.Errorf("empty input should yield no buckets, got %v", got)
	}
}

func TestRecentN(t *testing.T) {
	txs := sampleMonth()
	got := RecentN(txs, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].Description != "Freelance" || got[1].Description != "Mercado" {
		t.Errorf("order wrong: %s, %s", got[0].Description, got[1].Description)
	}

	// Same-date entries order by ID ascending, deterministically.
	a := tx(core.Expense, 100, "A", "Contas", "2025-05-01")
	b := tx(core.Expense, 200, "B", "Contas", "2025-05-01")
	first := RecentN([]core.Transaction{a, b}, 2)
	second := RecentN([]core.Transaction{b, a}, 2)
	if first[0].ID != second[0].ID || first[1].ID != second[1].ID {
		t.Error("tie order depends on insertion order")
	}
	if first[0].ID > first[1].ID {
		t.Error("tie not broken by ID ascending")
	}
}

func TestFilterAndSort(t *testing.T) {
	txs := append(sampleMonth(),
		tx(core.Expense, 4500, "Cinema", "Lazer", "2025-01-10", "lazer", "fim-de-semana"),
	)

	t.Run("query matches description case-insensitively", func(t *testing.T) {
		got := FilterAndSort(txs, Filter{Query: "aluguel"}, SortByDate, Ascending)
		if len(got) != 1 || got[0].Description != "Aluguel" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("query matches tags", func(t *testing.T) {
		got := FilterAndSort(txs, Filter{Query: "fim-de-sem"}, SortByDate, Ascending)
		if len(got) != 1 || got[0].Description != "Cinema" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("kind and category filters", func(t *testing.T) {
		got := FilterAndSort(txs, Filter{Kind: core.Expense}, SortByAmount, Descending)
		if len(got) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(got))
		}
		if got[0].Amount.Cents != 120000 || got[2].Amount.Cents != 4500 {
			t.Errorf("amount sort wrong: %v", got)
		}
		got = FilterAndSort(txs, Filter{Category: "Moradia"}, SortByDate, Ascending)
		if len(got) != 1 || got[0].Category != "Moradia" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("empty filter matches all", func(t *testing.T) {
		got := FilterAndSort(txs, Filter{}, SortByDescription, Ascending)
		if len(got) != len(txs) {
			t.Fatalf("expected %d, got %d", len(txs), len(got))
		}
		if got[0].Description != "Aluguel" {
			t.Errorf("description sort wrong: %s", got[0].Description)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := FilterAndSort(txs, Filter{Kind: core.Expense}, SortByCategory, Descending)
		twice := FilterAndSort(once, Filter{Kind: core.Expense}, SortByCategory, Descending)
		if len(once) != len(twice) {
			t.Fatalf("length changed: %d vs %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Fatalf("row %d moved on re-sort", i)
			}
		}
	})

	t.Run("input slice untouched", func(t *testing.T) {
		before := txs[0].ID
		_ = FilterAndSort(txs, Filter{}, SortByAmount, Descending)
		if txs[0].ID != before {
			t.Error("input slice was reordered")
		}
	})
}
