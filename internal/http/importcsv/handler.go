package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/contextutil"
	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/importer"
	"github.com/mwhitfield/spendlog/internal/suggest"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
	suggestSvc *suggest.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service, suggestSvc *suggest.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
		suggestSvc: suggestSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type expenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Amount      int64      `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
}

type createParamsDTO struct {
	Amount      int64      `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing expenseResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.FormatCSV, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i, p := range params {
		if p.Category != "" {
			continue
		}

		suggested, err := h.suggestSvc.Category(r.Context(), userID, p.Description)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Category = suggested
	}

	result, err := h.expenseSvc.ImportBatch(r.Context(), userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toExpenseResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]expense.CreateParams, 0, len(req.Params))

	for _, p := range req.Params {
		if p.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		cp := expense.CreateParams{
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
		}
		if p.Date != nil {
			cp.Date = *p.Date
		}

		params = append(params, cp)
	}

	expenses, err := h.expenseSvc.CreateBatch(r.Context(), userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(expenses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(expenses []*expense.Expense) importSuccessResponse {
	responses := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, toExpenseResponse(e))
	}

	return importSuccessResponse{
		Imported: len(responses),
		Expenses: responses,
	}
}

func toExpenseResponse(e *expense.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}

	if !e.Date.IsZero() {
		resp.Date = &e.Date
	}

	return resp
}

func toParamsDTO(p expense.CreateParams) createParamsDTO {
	dto := createParamsDTO{
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
	}

	if !p.Date.IsZero() {
		dto.Date = &p.Date
	}

	return dto
}
