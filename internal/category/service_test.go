package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/category"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		input     string
		setupMock func(m *category.MockRepository)
		wantErr   error
		wantName  string
	}

	tests := []testCase{
		{
			name:  "Success",
			input: "Food",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
			wantName: "Food",
		},
		{
			name:  "TrimsWhitespace",
			input: "  Transport  ",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
			wantName: "Transport",
		},
		{
			name:    "EmptyName",
			input:   "   ",
			wantErr: category.ErrEmptyName,
		},
		{
			name:  "Duplicate",
			input: "Food",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					Return(category.ErrDuplicate)
			},
			wantErr: category.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	id := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().DeleteCategory(gomock.Any(), userID, id).Return(nil)

	svc := category.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), userID, id))
}
