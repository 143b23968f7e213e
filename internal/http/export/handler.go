package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwhitfield/spendlog/internal/contextutil"
	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/summary", h.summary)
}

// dateFilter reads the optional start_date/end_date window.
func dateFilter(r *http.Request) expense.ListFilter {
	filter := expense.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}

// download streams the user's expenses as a CSV attachment. Optional
// start_date and end_date query parameters narrow the window.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := dateFilter(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"", time.Now().Format("20060102")))

	if _, err := h.svc.WriteCSV(r.Context(), userID, filter, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// summary returns the per-category breakdown of the same window as plain
// text.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.svc.SummaryFor(r.Context(), userID, dateFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(summary)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
