// Package obligation models recurring financial commitments and expands them into dated
// occurrences inside billing cycles.
package obligation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=obligation
type Repository interface {
	CreateObligation(ctx context.Context, o *Obligation) error
	GetObligation(ctx context.Context, id uuid.UUID) (*Obligation, error)
	ListObligations(ctx context.Context) ([]*Obligation, error)
	UpdateObligation(ctx context.Context, o *Obligation) error
	DeleteObligation(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title        string
	Category     string
	Amount       decimal.Decimal
	Type         transaction.Type
	CardID       *uuid.UUID
	Recurrence   Recurrence
	StartDate    calendar.Date
	Installments *int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Obligation, error) {
	o := &Obligation{
		ID:           uuid.New(),
		Title:        params.Title,
		Category:     params.Category,
		Amount:       params.Amount,
		Type:         params.Type,
		CardID:       params.CardID,
		Recurrence:   params.Recurrence,
		StartDate:    params.StartDate,
		Installments: params.Installments,
	}
	detachIncome(o)

	if err := s.repo.CreateObligation(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Obligation, error) {
	return s.repo.GetObligation(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Obligation, error) {
	return s.repo.ListObligations(ctx)
}

// Update replaces the stored obligation with the same id.
func (s *Service) Update(ctx context.Context, o *Obligation) error {
	detachIncome(o)
	return s.repo.UpdateObligation(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteObligation(ctx, id)
}

// detachIncome drops the card of an income obligation. Cards only carry expenses.
func detachIncome(o *Obligation) {
	if o.Type == transaction.TypeIncome {
		o.CardID = nil
	}
}

// TogglePaid flips the paid mark of the occurrence on date.
func (s *Service) TogglePaid(ctx context.Context, id uuid.UUID, date calendar.Date) (*Obligation, error) {
	return s.modify(ctx, id, func(o *Obligation) *Obligation { return TogglePaid(o, date) })
}

// ToggleExcluded skips the occurrence on date, or restores it.
func (s *Service) ToggleExcluded(ctx context.Context, id uuid.UUID, date calendar.Date) (*Obligation, error) {
	return s.modify(ctx, id, func(o *Obligation) *Obligation { return ToggleExcluded(o, date) })
}

func (s *Service) modify(ctx context.Context, id uuid.UUID, fn func(*Obligation) *Obligation) (*Obligation, error) {
	o, err := s.repo.GetObligation(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := fn(o)
	if err := s.repo.UpdateObligation(ctx, updated); err != nil {
		return nil, fmt.Errorf("updating obligation %s: %w", id, err)
	}

	return updated, nil
}
