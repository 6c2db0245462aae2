package audit

import (
	"testing"
	"time"
)

func TestAppendOrder(t *testing.T) {
	l := NewLog()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	l.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}

	l.Append("demo", ActionLogin, "", StatusSuccess)
	l.Append("demo", ActionAddTransaction, "Aluguel", StatusSuccess)
	l.Append("demo", ActionLogout, "", StatusSuccess)

	got := l.Entries()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Action != ActionLogout || got[2].Action != ActionLogin {
		t.Errorf("order wrong: %s .. %s", got[0].Action, got[2].Action)
	}
	if got[1].Detail != "Aluguel" || got[1].Status != StatusSuccess {
		t.Errorf("entry = %+v", got[1])
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append("demo", ActionLogin, "", StatusFailed)
	got := l.Entries()
	got[0].Action = "tampered"
	if l.Entries()[0].Action != ActionLogin {
		t.Error("Entries exposed internal slice")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d", l.Len())
	}
}
