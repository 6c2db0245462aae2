package storage

import (
	"context"
	"database/sql"
	"strings"

	"financas/internal/core"
)

// Queries wraps the raw SQL statements used by the repository.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const tagSeparator = "\x1f"

func (q *Queries) CreateTransaction(ctx context.Context, t core.Transaction) error {
	var name, mime sql.NullString
	var size sql.NullInt64
	if t.Attachment != nil {
		name = sql.NullString{String: t.Attachment.Name, Valid: true}
		mime = sql.NullString{String: t.Attachment.MIME, Valid: true}
		size = sql.NullInt64{Int64: t.Attachment.Size, Valid: true}
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, kind, amount_cents, description, category, occurred_on, tags,
			 attachment_name, attachment_size, attachment_mime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Kind), t.Amount.Cents, t.Description, t.Category,
		t.OccurredOn.ISO(), strings.Join(t.Tags, tagSeparator), name, size, mime)
	return err
}

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListTransactions returns the collection in insertion order, newest first.
func (q *Queries) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, kind, amount_cents, description, category, occurred_on, tags,
		       attachment_name, attachment_size, attachment_mime
		FROM transactions
		ORDER BY position DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t        core.Transaction
			kind     string
			occurred string
			tags     string
			name     sql.NullString
			size     sql.NullInt64
			mime     sql.NullString
		)
		if err := rows.Scan(&t.ID, &kind, &t.Amount.Cents, &t.Description,
			&t.Category, &occurred, &tags, &name, &size, &mime); err != nil {
			return nil, err
		}
		t.Kind = core.Kind(kind)
		date, err := core.ParseDate(occurred)
		if err != nil {
			return nil, err
		}
		t.OccurredOn = date
		if tags != "" {
			t.Tags = strings.Split(tags, tagSeparator)
		}
		if name.Valid {
			t.Attachment = &core.Attachment{Name: name.String, Size: size.Int64, MIME: mime.String}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (q *Queries) DeleteAllTransactions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}

func (q *Queries) ReplaceCategories(ctx context.Context, categories []string) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return err
	}
	for i, name := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name, ordinal) VALUES (?, ?)`, name, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (q *Queries) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY ordinal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
