package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/contextutil"
	"github.com/mwhitfield/spendlog/internal/report"
)

type Handler struct {
	svc       *budget.Service
	reportSvc *report.Service
}

func NewHandler(svc *budget.Service, reportSvc *report.Service) *Handler {
	return &Handler{
		svc:       svc,
		reportSvc: reportSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/", h.upsert)
	r.Delete("/{id}", h.delete)
}

type upsertBudgetRequest struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

type budgetResponse struct {
	ID          uuid.UUID     `json:"id"`
	Category    string        `json:"category"`
	Amount      int64         `json:"amount"`
	Spent       int64         `json:"spent"`
	Remaining   int64         `json:"remaining"`
	Utilization float64       `json:"utilization"`
	Status      report.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// list returns every budget joined with its spend for the current calendar
// month.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statuses, err := h.reportSvc.BudgetOverview(r.Context(), userID, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	byCategory := make(map[string]report.BudgetStatus, len(statuses))
	for _, s := range statuses {
		byCategory[s.Category] = s
	}

	resp := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, toResponse(b, byCategory[b.Category]))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req upsertBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Upsert(r.Context(), userID, req.Category, req.Amount)
	if err != nil {
		if errors.Is(err, budget.ErrEmptyCategory) || errors.Is(err, budget.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	status := report.EvaluateBudget(b.Category, b.Amount, 0)

	statuses, err := h.reportSvc.BudgetOverview(r.Context(), userID, time.Now())
	if err == nil {
		for _, s := range statuses {
			if s.Category == b.Category {
				status = s
				break
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b, status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toResponse(b *budget.Budget, status report.BudgetStatus) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		Amount:      b.Amount,
		Spent:       status.Spent,
		Remaining:   status.Remaining,
		Utilization: status.Utilization,
		Status:      status.Status,
		CreatedAt:   b.CreatedAt,
	}
}
