package core

import (
	"errors"
	"testing"
)

var testCategories = []string{"Moradia", "Alimentação", "Salário", "Freelance"}

func validTx() Transaction {
	return NewTransaction(Expense, Money{Cents: 120000}, "Aluguel", "Moradia", NewDate(2025, 1, 2), nil)
}

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{"empty description", func(tx *Transaction) { tx.Description = "   " }, ErrEmptyDescription},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"unknown category", func(tx *Transaction) { tx.Category = "Viagens" }, ErrUnknownCategory},
		{"zero date", func(tx *Transaction) { tx.OccurredOn = Date{} }, ErrInvalidDate},
		{"bad kind", func(tx *Transaction) { tx.Kind = Kind("transfer") }, ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTx()
			tc.mutate(&tx)
			err := tx.Validate(testCategories)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewTransactionAssignsUniqueIDs(t *testing.T) {
	a := validTx()
	b := validTx()
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct IDs")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" casa ", "fixo", "casa", "", "fixo", "mensal"})
	want := []string{"casa", "fixo", "mensal"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ISO() != "2025-01-02" || d.YearMonth() != "2025-01" {
		t.Fatalf("unexpected date: %s / %s", d.ISO(), d.YearMonth())
	}
	if _, err := ParseDate("02/01/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
