// Package settings owns the single GoalSettings record and the toggles that edit it.
package settings

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/savings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (goal.Settings, error)
	SaveSettings(ctx context.Context, s goal.Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (goal.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// UpdateParams replaces the cycle and saving configuration. Marked days, adjustments and
// withdrawals are left alone.
type UpdateParams struct {
	StartDayOfMonth   int
	EndDayOfMonth     *int
	DailySavingTarget decimal.Decimal
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (goal.Settings, error) {
	return s.modify(ctx, func(cur goal.Settings) goal.Settings {
		c := cur.Clone()
		c.StartDayOfMonth = params.StartDayOfMonth
		c.EndDayOfMonth = params.EndDayOfMonth
		c.DailySavingTarget = params.DailySavingTarget

		return c
	})
}

func (s *Service) ToggleDayOff(ctx context.Context, d calendar.Date) (goal.Settings, error) {
	return s.modify(ctx, func(cur goal.Settings) goal.Settings { return goal.ToggleDayOff(cur, d) })
}

func (s *Service) ToggleSavingsDay(ctx context.Context, d calendar.Date) (goal.Settings, error) {
	return s.modify(ctx, func(cur goal.Settings) goal.Settings { return savings.ToggleDay(cur, d) })
}

func (s *Service) SetAdjustment(ctx context.Context, d calendar.Date, amount decimal.Decimal) (goal.Settings, error) {
	return s.modify(ctx, func(cur goal.Settings) goal.Settings { return savings.SetAdjustment(cur, d, amount) })
}

func (s *Service) SetWithdrawal(ctx context.Context, d calendar.Date, amount decimal.Decimal) (goal.Settings, error) {
	return s.modify(ctx, func(cur goal.Settings) goal.Settings { return savings.SetWithdrawal(cur, d, amount) })
}

func (s *Service) modify(ctx context.Context, fn func(goal.Settings) goal.Settings) (goal.Settings, error) {
	cur, err := s.repo.GetSettings(ctx)
	if err != nil {
		return goal.Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	updated := fn(cur)
	if err := s.repo.SaveSettings(ctx, updated); err != nil {
		return goal.Settings{}, fmt.Errorf("saving settings: %w", err)
	}

	return updated, nil
}
