package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"financas/internal/audit"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/report"
	"financas/internal/store"
	"financas/internal/upload"
)

// maxFormMemory bounds how much of a multipart body is held in memory before
// spilling to disk.
const maxFormMemory = 6 << 20

// maxRequestBody caps the request body. It sits above the upload gate's
// ceiling so an oversized attachment still reaches the gate and gets the
// per-field size rejection instead of a generic parse failure.
const maxRequestBody = 2 * upload.MaxSize

// handleTransactions dispatches the list view (GET) and the form submit (POST).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	var attachment *core.Attachment
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				reason := "arquivo excede o limite de 5 MiB"
				s.audit.Append(session.User, audit.ActionUploadRejected, reason, audit.StatusBlocked)
				writeErrorFragment(w, http.StatusUnprocessableEntity, reason)
				return
			}
			writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
			return
		}
		file, header, err := r.FormFile("attachment")
		switch {
		case err == http.ErrMissingFile:
			// No attachment; nothing to gate.
		case err != nil:
			writeErrorFragment(w, http.StatusBadRequest, "Falha ao ler o anexo")
			return
		default:
			defer file.Close()
			attachment, err = upload.Gate("attachment", header.Filename,
				header.Header.Get("Content-Type"), header.Size, file)
			if err != nil {
				var rejected *upload.Rejected
				if errors.As(err, &rejected) {
					s.audit.Append(session.User, audit.ActionUploadRejected, rejected.Reason, audit.StatusBlocked)
					writeErrorFragment(w, http.StatusUnprocessableEntity, rejected.Reason)
					return
				}
				writeErrorFragment(w, http.StatusBadRequest, "Falha ao processar o anexo")
				return
			}
		}
	} else if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	kind := core.Kind(sanitizeInput(r.Form.Get("kind")))
	if err := kind.Validate(); err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Tipo inválido: escolha receita ou despesa")
		return
	}

	cents, err := core.ParseDecimalToCents(r.Form.Get("amount"))
	if err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Valor inválido: informe um número positivo")
		return
	}

	occurredOn, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Data inválida: use o formato AAAA-MM-DD")
		return
	}

	var tags []string
	if raw := strings.TrimSpace(r.Form.Get("tags")); raw != "" {
		tags = strings.Split(raw, ",")
	}

	tx := core.NewTransaction(kind, core.Money{Cents: cents},
		sanitizeInput(r.Form.Get("description")),
		sanitizeInput(r.Form.Get("category")),
		occurredOn, tags)
	tx.Attachment = attachment

	id, err := s.store.Append(r.Context(), tx)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyDescription):
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Descrição obrigatória")
		case errors.Is(err, core.ErrUnknownCategory), errors.Is(err, core.ErrEmptyCategory):
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Categoria inválida")
		case errors.Is(err, core.ErrInvalidAmount):
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Valor inválido")
		default:
			slog.ErrorContext(r.Context(), "Failed to save transaction",
				"error", err,
				"description", tx.Description,
				"amount_cents", tx.Amount.Cents,
				"category", tx.Category,
				"component", "transaction_handler",
				"operation", "create")
			writeErrorFragment(w, http.StatusInternalServerError, "Erro ao salvar o lançamento")
		}
		return
	}

	atomic.AddInt64(&s.appMetrics.totalTransactions, 1)
	s.audit.Append(session.User, audit.ActionAddTransaction,
		fmt.Sprintf("%s %s", tx.Kind.Label(), tx.Description), audit.StatusSuccess)

	slog.InfoContext(r.Context(), "Transaction created",
		"transaction_id", id,
		"kind", string(tx.Kind),
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"has_attachment", attachment != nil)

	msg := fmt.Sprintf("%s registrada: %s — R$ %s",
		tx.Kind.Label(), tx.Description, core.FormatCents(tx.Amount.Cents))
	w.Header().Set("HX-Trigger", fmt.Sprintf(`{
		"form:reset": {},
		"show-notification": {"type": "success", "message": "%s", "duration": 3000},
		"page:refresh": {}
	}`, template.JSEscapeString(msg)))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		w.Header().Set("Allow", "DELETE, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}
	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		id = sanitizeInput(r.URL.Query().Get("id"))
	}
	if id == "" {
		writeErrorFragment(w, http.StatusBadRequest, "Identificador ausente")
		return
	}

	session := sessionFrom(r.Context())
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErrorFragment(w, http.StatusNotFound, "Lançamento não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "transaction_id", id, "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao excluir o lançamento")
		return
	}

	s.audit.Append(session.User, audit.ActionDelete, id, audit.StatusSuccess)
	slog.InfoContext(r.Context(), "Transaction deleted", "transaction_id", id)

	w.Header().Set("HX-Trigger", `{"page:refresh": {}}`)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar lançamentos")
		return
	}

	filter, key, order := parseListQuery(r)
	rows := report.FilterAndSort(txs, filter, key, order)

	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load categories", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar categorias")
		return
	}

	data := struct {
		Rows       []core.Transaction
		Categories []string
		Query      string
		Category   string
		Kind       string
		Sort       string
		Order      string
		Total      int
	}{
		Rows:       rows,
		Categories: categories,
		Query:      filter.Query,
		Category:   filter.Category,
		Kind:       string(filter.Kind),
		Sort:       string(key),
		Order:      string(order),
		Total:      len(rows),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "transactions_list", data); err != nil {
		slog.ErrorContext(r.Context(), "Transactions list template failed", "error", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions for export", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	filter, key, order := parseListQuery(r)
	rows := report.FilterAndSort(txs, filter, key, order)

	session := sessionFrom(r.Context())
	s.audit.Append(session.User, audit.ActionExport,
		fmt.Sprintf("%d linhas", len(rows)), audit.StatusSuccess)
	applog.FromContext(r.Context()).InfoContext(r.Context(), "CSV exported",
		applog.NewFields().
			WithUser(session.User).
			WithOperation(applog.OpExport).
			ToSlice()...)

	filename := "lancamentos-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := report.WriteCSV(w, rows); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}
