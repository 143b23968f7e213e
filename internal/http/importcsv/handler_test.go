package importcsv_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/contextutil"
	"github.com/mwhitfield/spendlog/internal/expense"
	importHandler "github.com/mwhitfield/spendlog/internal/http/importcsv"
	"github.com/mwhitfield/spendlog/internal/importer"
	"github.com/mwhitfield/spendlog/internal/suggest"
)

func newTestRouter(t *testing.T, repo expense.Repository) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := importHandler.NewHandler(
		importer.NewService(),
		expense.NewService(repo),
		suggest.NewService(suggest.NewMockRepository(ctrl)),
	)

	r := chi.NewRouter()
	r.Route("/import", h.Routes)

	return r
}

func confirmRequest(userID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req.WithContext(contextutil.WithUserID(req.Context(), userID))
}

func TestHandler_ConfirmImport_RejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	userID := uuid.New()

	// No repository calls: validation fails before the batch is started.
	repo := expense.NewMockRepository(ctrl)
	router := newTestRouter(t, repo)

	body := `{"params":[{"amount":0,"category":"Food","description":"Lunch"}]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, confirmRequest(userID, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount must be positive")
}

func TestHandler_ConfirmImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	userID := uuid.New()

	repo := expense.NewMockRepository(ctrl)
	itx := expense.NewMockImportTx(ctrl)

	repo.EXPECT().BeginImport(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	router := newTestRouter(t, repo)

	body := `{"params":[{"amount":750,"category":"Food","description":"Lunch","date":"2025-03-10T00:00:00Z"}]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, confirmRequest(userID, body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":1`)
}
