package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
)

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	cur := goal.DefaultSettings()
	cur.SavingsDates = calendar.NewDateSet(calendar.MustParse("2024-01-02"))

	repo.EXPECT().GetSettings(gomock.Any()).Return(cur, nil)
	repo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Update(context.Background(), settings.UpdateParams{
		StartDayOfMonth:   10,
		EndDayOfMonth:     new(9),
		DailySavingTarget: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got.StartDayOfMonth)
	assert.Equal(t, 9, *got.EndDayOfMonth)
	assert.Equal(t, cur.SavingsDates, got.SavingsDates)
}

func TestService_Toggles(t *testing.T) {
	d := calendar.MustParse("2024-03-05")

	type testCase struct {
		name  string
		call  func(svc *settings.Service) (goal.Settings, error)
		check func(t *testing.T, s goal.Settings)
	}

	tests := []testCase{
		{
			name: "DayOff",
			call: func(svc *settings.Service) (goal.Settings, error) {
				return svc.ToggleDayOff(context.Background(), d)
			},
			check: func(t *testing.T, s goal.Settings) { assert.True(t, s.IsDayOff(d)) },
		},
		{
			name: "SavingsDay",
			call: func(svc *settings.Service) (goal.Settings, error) {
				return svc.ToggleSavingsDay(context.Background(), d)
			},
			check: func(t *testing.T, s goal.Settings) { assert.True(t, s.SavingsDates.Has(d)) },
		},
		{
			name: "Adjustment",
			call: func(svc *settings.Service) (goal.Settings, error) {
				return svc.SetAdjustment(context.Background(), d, decimal.NewFromInt(40))
			},
			check: func(t *testing.T, s goal.Settings) { assert.Contains(t, s.SavingsAdjustments, d) },
		},
		{
			name: "Withdrawal",
			call: func(svc *settings.Service) (goal.Settings, error) {
				return svc.SetWithdrawal(context.Background(), d, decimal.NewFromInt(20))
			},
			check: func(t *testing.T, s goal.Settings) { assert.Contains(t, s.SavingsWithdrawals, d) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settings.NewMockRepository(ctrl)
			repo.EXPECT().GetSettings(gomock.Any()).Return(goal.DefaultSettings(), nil)
			repo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(nil)

			got, err := tt.call(settings.NewService(repo))
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settings.NewMockRepository(ctrl)
	repo.EXPECT().GetSettings(gomock.Any()).Return(goal.DefaultSettings(), nil)
	repo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := settings.NewService(repo).ToggleDayOff(context.Background(), calendar.MustParse("2024-03-05"))
	assert.ErrorContains(t, err, "saving settings")
}
