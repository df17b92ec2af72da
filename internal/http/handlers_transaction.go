package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// transactionPayload is the request body for create and update. Amount is
// kept raw so both "120.50" and 120.50 parse exactly, without a float round
// trip.
type transactionPayload struct {
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	PaymentMode string          `json:"paymentMode"`
	Remarks     string          `json:"remarks"`
	Date        string          `json:"date"`
}

// rawAmount unwraps a JSON number or string literal into its decimal text.
func rawAmount(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return ""
	}
	return s
}

type transactionResponse struct {
	ID          int64                `json:"id"`
	Amount      core.Money           `json:"amount"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Type        core.TransactionType `json:"type"`
	PaymentMode string               `json:"paymentMode"`
	Remarks     string               `json:"remarks"`
	Date        core.Date            `json:"date"`
	Version     int64                `json:"version"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Type:        t.Type,
		PaymentMode: t.PaymentMode,
		Remarks:     t.Remarks,
		Date:        t.Date,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// parseTransactionPayload turns a request body into a core.Transaction,
// accumulating parse problems alongside domain validation.
func parseTransactionPayload(r *http.Request) (core.Transaction, error) {
	var p transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return core.Transaction{}, core.FieldErrors{"body": "invalid JSON"}
	}

	errs := core.FieldErrors{}
	var t core.Transaction

	if amount := rawAmount(p.Amount); amount == "" {
		errs["amount"] = "is required"
	} else {
		cents, err := core.ParseDecimalToCents(amount)
		if err != nil {
			errs["amount"] = "must be a positive number"
		} else {
			t.Amount = core.Money{Cents: cents}
		}
	}

	if strings.TrimSpace(p.Date) == "" {
		errs["date"] = "is required"
	} else {
		d, err := core.ParseDate(p.Date)
		if err != nil {
			errs["date"] = "must be a YYYY-MM-DD date"
		} else {
			t.Date = d
		}
	}

	t.Description = sanitizeInput(p.Description)
	t.Category = sanitizeInput(p.Category)
	t.Type = core.TransactionType(strings.TrimSpace(p.Type))
	t.PaymentMode = sanitizeInput(p.PaymentMode)
	t.Remarks = sanitizeInput(p.Remarks)

	if err := t.Validate(); err != nil {
		var fieldErrs core.FieldErrors
		if errors.As(err, &fieldErrs) {
			for k, v := range fieldErrs {
				if _, taken := errs[k]; !taken {
					errs[k] = v
				}
			}
		}
	}

	if len(errs) > 0 {
		return core.Transaction{}, errs
	}
	return t, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid transaction id", nil)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := parseTransactionPayload(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := s.transactions.CreateTransaction(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	t, err := parseTransactionPayload(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	updated, err := s.transactions.UpdateTransaction(r.Context(), id, t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.transactions.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
