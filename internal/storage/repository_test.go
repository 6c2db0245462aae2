package storage

import (
	"context"
	"errors"
	"testing"

	"financas/internal/core"
	"financas/internal/store"
)

var cats = []string{"Moradia", "Alimentação", "Salário"}

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(InMemoryDSN, cats)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTx(kind core.Kind, desc, cat string, tags ...string) core.Transaction {
	return core.NewTransaction(kind, core.Money{Cents: 12345}, desc, cat, core.NewDate(2025, 1, 15), tags)
}

func TestAppendListDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	first := newTx(core.Expense, "Aluguel", "Moradia", "casa", "fixo")
	second := newTx(core.Income, "Salário", "Salário")

	if _, err := repo.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.Append(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Error("list order not newest-first")
	}
	got := items[1]
	if got.Description != "Aluguel" || got.Category != "Moradia" || got.Amount.Cents != 12345 {
		t.Errorf("round-tripped record wrong: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "casa" || got.Tags[1] != "fixo" {
		t.Errorf("tags round trip wrong: %v", got.Tags)
	}
	if got.OccurredOn.ISO() != "2025-01-15" {
		t.Errorf("date round trip wrong: %s", got.OccurredOn.ISO())
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	if _, err := repo.Append(ctx, newTx(core.Expense, "Viagem", "Férias")); !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	items, _ := repo.List(ctx)
	if len(items) != 0 {
		t.Fatal("rejected append mutated the store")
	}
}

func TestAttachmentRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	tx := newTx(core.Expense, "Mercado", "Alimentação")
	tx.Attachment = &core.Attachment{Name: "nota.pdf", Size: 2048, MIME: "application/pdf"}
	if _, err := repo.Append(ctx, tx); err != nil {
		t.Fatalf("append: %v", err)
	}

	items, _ := repo.List(ctx)
	if len(items) != 1 || items[0].Attachment == nil {
		t.Fatal("attachment lost")
	}
	a := items[0].Attachment
	if a.Name != "nota.pdf" || a.Size != 2048 || a.MIME != "application/pdf" {
		t.Errorf("attachment = %+v", a)
	}
}

func TestResetAndGeneration(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	gen := repo.Generation()
	_, _ = repo.Append(ctx, newTx(core.Expense, "Aluguel", "Moradia"))
	if repo.Generation() == gen {
		t.Error("generation did not advance on append")
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	items, _ := repo.List(ctx)
	if len(items) != 0 {
		t.Fatal("reset did not clear transactions")
	}
}

func TestCategoriesSeeded(t *testing.T) {
	repo := newRepo(t)
	got, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(got) != len(cats) {
		t.Fatalf("expected %d categories, got %d", len(cats), len(got))
	}
	for i := range cats {
		if got[i] != cats[i] {
			t.Errorf("category %d = %q, want %q", i, got[i], cats[i])
		}
	}
}
