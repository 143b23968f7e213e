package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/expense"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(m *expense.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: expense.CreateParams{
				Amount:      4250,
				Category:    "Food",
				Description: "Groceries",
				Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			params: expense.CreateParams{
				Amount: 500,
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_List(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		filter    expense.ListFilter
		setupMock func(m *expense.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			filter: expense.ListFilter{},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					ListExpenses(gomock.Any(), userID, expense.ListFilter{}).
					Return([]*expense.Expense{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name:   "Error",
			filter: expense.ListFilter{},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					ListExpenses(gomock.Any(), userID, expense.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantLen: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.List(context.Background(), userID, tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	itx := expense.NewMockImportTx(ctrl)
	svc := expense.NewService(repo)

	userID := uuid.New()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []expense.CreateParams{
		{
			Amount:      1000,
			Category:    "Food",
			Description: "Coffee",
			Date:        date,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), userID, params).Return(nil, nil)
	itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
	assert.Equal(t, userID, result.Imported[0].UserID)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	itx := expense.NewMockImportTx(ctrl)
	svc := expense.NewService(repo)

	userID := uuid.New()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []expense.CreateParams{
		{
			Amount:      1000,
			Category:    "Food",
			Description: "Coffee",
			Date:        date,
		},
		{
			Amount:      2000,
			Category:    "Food",
			Description: "Lunch",
			Date:        date,
		},
	}

	existing := &expense.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      1000,
		Category:    "Food",
		Description: "Coffee",
		Date:        date,
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), userID, params).Return([]*expense.Expense{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_UndatedConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	itx := expense.NewMockImportTx(ctrl)
	svc := expense.NewService(repo)

	userID := uuid.New()
	params := []expense.CreateParams{
		{
			Amount:      500,
			Description: "Cash withdrawal",
		},
	}

	// An identical undated row already stored (NULL date in the store, zero
	// time here). FindDuplicates must surface it so re-imports of files with
	// undated rows conflict instead of silently duplicating.
	existing := &expense.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      500,
		Description: "Cash withdrawal",
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, time.Time{}, time.Time{}).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), userID, params).Return([]*expense.Expense{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.New)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	itx := expense.NewMockImportTx(ctrl)
	svc := expense.NewService(repo)

	userID := uuid.New()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []expense.CreateParams{
		{
			Amount:      1000,
			Category:    "Transport",
			Description: "Bus pass",
			Date:        date,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, date, date).Return(itx, nil)
	itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	expenses, err := svc.CreateBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
	assert.Equal(t, int64(1000), expenses[0].Amount)
	assert.Equal(t, "Transport", expenses[0].Category)
}

func TestExpense_Bucket(t *testing.T) {
	e := &expense.Expense{Category: "Food"}
	assert.Equal(t, "Food", e.Bucket())

	e = &expense.Expense{}
	assert.Equal(t, expense.Uncategorized, e.Bucket())
}
