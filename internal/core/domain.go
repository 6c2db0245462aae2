package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind distinguishes money coming in from money going out.
	// It is fixed at creation time and never mutated.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Attachment references an uploaded file accepted by the upload gate.
	// A transaction carries at most one.
	Attachment struct {
		Name string
		Size int64
		MIME string
	}

	Transaction struct {
		ID          string
		Kind        Kind
		Amount      Money
		Description string
		Category    string
		OccurredOn  Date
		Tags        []string
		Attachment  *Attachment
	}
)

var (
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidDate      = errors.New("invalid date")
)

// Validate checks the kind tag.
func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Label returns the localized display label for the kind.
func (k Kind) Label() string {
	if k == Income {
		return "Receita"
	}
	return "Despesa"
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// YearMonth returns the calendar bucket key in "YYYY-MM" form.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// ISO returns the date in ISO calendar form (YYYY-MM-DD), no time component.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// NewDate creates a Date at day granularity in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeTags trims entries, drops empties and suppresses duplicates
// while preserving first-seen order.
func NormalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// NewTransaction assembles a transaction with a fresh ID and normalized tags.
// Validation happens separately at the form boundary.
func NewTransaction(kind Kind, amount Money, description, category string, occurredOn Date, tags []string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		OccurredOn:  occurredOn,
		Tags:        NormalizeTags(tags),
	}
}

// Validate checks the record against the invariants enforced at the form
// boundary. categories is the configured category list; an empty list skips
// the membership check.
func (t Transaction) Validate(categories []string) error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.OccurredOn.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(categories) > 0 {
		found := false
		for _, c := range categories {
			if c == t.Category {
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownCategory
		}
	}
	return nil
}
