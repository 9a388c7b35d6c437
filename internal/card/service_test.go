package card_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/metadia/internal/card"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *card.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *card.MockRepository) {
				m.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "RepoError",
			setupMock: func(m *card.MockRepository) {
				m.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := card.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := card.NewService(repo).Create(context.Background(), card.CreateParams{
				Name:  "Nubank",
				Color: "#8A05BE",
				Limit: decimal.NewFromInt(1500),
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.False(t, got.Unlimited())
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := card.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().DeleteCard(gomock.Any(), id).Return(3, nil)

	detached, err := card.NewService(repo).Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, detached)
}

func TestCreditCard_Unlimited(t *testing.T) {
	assert.True(t, (&card.CreditCard{}).Unlimited())
	assert.False(t, (&card.CreditCard{Limit: decimal.NewFromInt(1)}).Unlimited())
}
