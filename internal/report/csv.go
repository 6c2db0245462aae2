package report

import (
	"encoding/csv"
	"io"
	"strings"

	"financas/internal/core"
)

// CSVHeader is the fixed export header. Consuming spreadsheets rely on the
// column order and on the comma decimal separator inside Amount.
var CSVHeader = []string{"Date", "Type", "Description", "Category", "Amount", "Tags"}

// WriteCSV renders the (already filtered and sorted) sequence as CSV.
// Type uses the localized kind label, Amount uses a comma decimal separator
// and tags are joined with "; " inside a single field. Quoting follows
// encoding/csv (RFC 4180 style).
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.OccurredOn.ISO(),
			tx.Kind.Label(),
			tx.Description,
			tx.Category,
			core.FormatCents(tx.Amount.Cents),
			strings.Join(tx.Tags, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows previously produced by WriteCSV back into transactions.
// IDs and attachments are not part of the export and come back empty. The
// export round-trips description, category, tags, amount, kind and date.
func ReadCSV(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Skip the header row when present.
	if len(records[0]) == len(CSVHeader) && records[0][0] == CSVHeader[0] {
		records = records[1:]
	}
	out := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		if len(rec) != len(CSVHeader) {
			continue
		}
		date, err := core.ParseDate(rec[0])
		if err != nil {
			return nil, err
		}
		cents, err := core.ParseCentsDecimal(rec[4])
		if err != nil {
			return nil, err
		}
		kind := core.Expense
		if rec[1] == core.Income.Label() {
			kind = core.Income
		}
		var tags []string
		if rec[5] != "" {
			tags = core.NormalizeTags(strings.Split(rec[5], "; "))
		}
		out = append(out, core.Transaction{
			Kind:        kind,
			Amount:      core.Money{Cents: cents},
			Description: rec[2],
			Category:    rec[3],
			OccurredOn:  date,
			Tags:        tags,
		})
	}
	return out, nil
}
