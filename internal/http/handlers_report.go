package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/catalog"
	"fintrack/internal/report"
)

const defaultReportDays = 30

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	days := defaultReportDays
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer", nil)
			return
		}
		days = n
	}

	key := "report:" + strconv.Itoa(days)
	if cached, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Report cache hit", "days", days)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	list, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rep := report.Build(list, days, time.Now())
	s.reportCache.Set(key, rep)

	writeJSON(w, http.StatusOK, rep)
}

type catalogResponse struct {
	ExpenseCategories []catalog.Category    `json:"expenseCategories"`
	IncomeCategories  []catalog.Category    `json:"incomeCategories"`
	PaymentModes      []catalog.PaymentMode `json:"paymentModes"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		ExpenseCategories: catalog.ExpenseCategories,
		IncomeCategories:  catalog.IncomeCategories,
		PaymentModes:      catalog.PaymentModes,
	})
}
