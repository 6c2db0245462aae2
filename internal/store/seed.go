package store

import (
	"time"

	"financas/internal/core"
)

// DemoTransactions builds the demonstration records seeded on login, anchored
// to the month of now so the dashboard has data to show. Categories come from
// the default list.
func DemoTransactions(now time.Time) []core.Transaction {
	year, month := now.Year(), int(now.Month())
	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}

	mk := func(kind core.Kind, cents int64, desc, cat string, y, m, d int, tags ...string) core.Transaction {
		return core.NewTransaction(kind, core.Money{Cents: cents}, desc, cat, core.NewDate(y, m, d), tags)
	}

	return []core.Transaction{
		mk(core.Income, 500000, "Salário", "Salário", year, month, 1, "mensal"),
		mk(core.Expense, 120000, "Aluguel", "Moradia", year, month, 2, "casa", "fixo"),
		mk(core.Expense, 35000, "Mercado", "Alimentação", year, month, 3, "comida"),
		mk(core.Income, 80000, "Freelance", "Freelance", year, month, 4),
		mk(core.Expense, 8900, "Internet", "Contas", year, month, 5, "fixo"),
		mk(core.Income, 500000, "Salário", "Salário", prevYear, prevMonth, 1, "mensal"),
		mk(core.Expense, 120000, "Aluguel", "Moradia", prevYear, prevMonth, 2, "casa", "fixo"),
		mk(core.Expense, 42000, "Mercado", "Alimentação", prevYear, prevMonth, 8, "comida"),
		mk(core.Expense, 15000, "Cinema e jantar", "Lazer", prevYear, prevMonth, 14, "fim-de-semana"),
	}
}
