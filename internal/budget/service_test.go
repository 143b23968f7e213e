package budget_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/budget"
)

func TestService_Upsert(t *testing.T) {
	userID := uuid.New()

	type args struct {
		category string
		amount   int64
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *budget.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{category: "Food", amount: 50000},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					UpsertBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyCategory",
			args:    args{category: " ", amount: 1000},
			wantErr: budget.ErrEmptyCategory,
		},
		{
			name:    "ZeroAmount",
			args:    args{category: "Food", amount: 0},
			wantErr: budget.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			args:    args{category: "Food", amount: -100},
			wantErr: budget.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo)
			got, err := svc.Upsert(context.Background(), userID, tt.args.category, tt.args.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.category, got.Category)
			assert.Equal(t, tt.args.amount, got.Amount)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().
		ListBudgets(gomock.Any(), userID).
		Return([]*budget.Budget{
			{Category: "Food", Amount: 50000},
			{Category: "Transport", Amount: 10000},
		}, nil)

	svc := budget.NewService(repo)
	got, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
