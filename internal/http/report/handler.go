package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwhitfield/spendlog/internal/contextutil"
	"github.com/mwhitfield/spendlog/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/budgets", h.budgets)
}

type categoryTotalDTO struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

type seriesPointDTO struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

type dashboardResponse struct {
	ByCategory   []categoryTotalDTO `json:"by_category"`
	Weekly       []seriesPointDTO   `json:"weekly"`
	MonthToDate  int64              `json:"month_to_date"`
	TotalSpent   int64              `json:"total_spent"`
	ExpenseCount int                `json:"expense_count"`
}

type budgetStatusDTO struct {
	Category    string        `json:"category"`
	Budget      int64         `json:"budget"`
	Spent       int64         `json:"spent"`
	Remaining   int64         `json:"remaining"`
	Utilization float64       `json:"utilization"`
	Status      report.Status `json:"status"`
}

// refDate reads the optional date override; absent or malformed means now.
func refDate(r *http.Request) time.Time {
	if s := r.URL.Query().Get("date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t
		}
	}

	return time.Now()
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	dash, err := h.svc.Dashboard(r.Context(), userID, refDate(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{
		ByCategory:   make([]categoryTotalDTO, 0, len(dash.ByCategory)),
		Weekly:       make([]seriesPointDTO, 0, len(dash.Weekly)),
		MonthToDate:  dash.MonthToDate,
		TotalSpent:   dash.TotalSpent,
		ExpenseCount: dash.ExpenseCount,
	}

	for _, ct := range dash.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryTotalDTO{Category: ct.Category, Total: ct.Total})
	}

	for _, p := range dash.Weekly {
		resp.Weekly = append(resp.Weekly, seriesPointDTO{Label: p.Label, Total: p.Total})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	statuses, err := h.svc.BudgetOverview(r.Context(), userID, refDate(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]budgetStatusDTO, 0, len(statuses))
	for _, s := range statuses {
		resp = append(resp, budgetStatusDTO{
			Category:    s.Category,
			Budget:      s.Budget,
			Spent:       s.Spent,
			Remaining:   s.Remaining,
			Utilization: s.Utilization,
			Status:      s.Status,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
