// Package audit keeps the session's security log: an append-only, in-memory
// list of user actions. It is a demonstration surface with no integrity
// guarantee beyond append order.
package audit

import (
	"sync"
	"time"
)

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusBlocked Status = "blocked"
)

const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionAddTransaction = "add_transaction"
	ActionDelete         = "delete_transaction"
	ActionExport         = "export_csv"
	ActionUploadRejected = "upload_rejected"
	ActionPasswordChange = "password_change"
)

type (
	// Status tags how the logged action ended.
	Status string

	Entry struct {
		Time   time.Time `json:"time"`
		User   string    `json:"user"`
		Action string    `json:"action"`
		Detail string    `json:"detail,omitempty"`
		Status Status    `json:"status"`
	}

	// Log is the append-only entry list. Safe for concurrent use.
	Log struct {
		mu      sync.Mutex
		entries []Entry
		now     func() time.Time
	}
)

func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append records one action at the current time.
func (l *Log) Append(user, action, detail string, status Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Time:   l.now().UTC(),
		User:   user,
		Action: action,
		Detail: detail,
		Status: status,
	})
}

// Entries returns a copy, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len reports how many entries have been appended.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
