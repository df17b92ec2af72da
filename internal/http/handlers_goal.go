package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

type goalPayload struct {
	BankAmount json.RawMessage `json:"bankAmount"`
	StartDate  string          `json:"startDate"`
}

type goalResponse struct {
	ID         int64      `json:"id"`
	BankAmount core.Money `json:"bankAmount"`
	StartDate  core.Date  `json:"startDate"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		ID:         g.ID,
		BankAmount: g.BankAmount,
		StartDate:  g.StartDate,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getGoal(w, r)
	case http.MethodPost:
		s.replaceGoal(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.LatestGoal(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) replaceGoal(w http.ResponseWriter, r *http.Request) {
	var p goalPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDomainError(w, r, core.FieldErrors{"body": "invalid JSON"})
		return
	}

	errs := core.FieldErrors{}
	var g core.Goal

	if amount := rawAmount(p.BankAmount); amount == "" {
		errs["bankAmount"] = "is required"
	} else {
		cents, err := core.ParseDecimalToCents(amount)
		if err != nil {
			errs["bankAmount"] = "must be a positive number"
		} else {
			g.BankAmount = core.Money{Cents: cents}
		}
	}

	if strings.TrimSpace(p.StartDate) == "" {
		errs["startDate"] = "is required"
	} else {
		d, err := core.ParseDate(p.StartDate)
		if err != nil {
			errs["startDate"] = "must be a YYYY-MM-DD date"
		} else {
			g.StartDate = d
		}
	}

	if len(errs) > 0 {
		writeDomainError(w, r, errs)
		return
	}

	saved, err := s.goals.ReplaceGoal(r.Context(), g)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(saved))
}
