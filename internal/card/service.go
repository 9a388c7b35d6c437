package card

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=card
type Repository interface {
	CreateCard(ctx context.Context, c *CreditCard) error
	GetCard(ctx context.Context, id uuid.UUID) (*CreditCard, error)
	ListCards(ctx context.Context) ([]*CreditCard, error)
	UpdateCard(ctx context.Context, c *CreditCard) error
	// DeleteCard removes the card and clears the card reference of every obligation charged to
	// it, returning how many obligations were detached. Obligations are never deleted.
	DeleteCard(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Color string
	Limit decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*CreditCard, error) {
	c := &CreditCard{
		ID:    uuid.New(),
		Name:  params.Name,
		Color: params.Color,
		Limit: params.Limit,
	}
	if err := s.repo.CreateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CreditCard, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*CreditCard, error) {
	return s.repo.ListCards(ctx)
}

func (s *Service) Update(ctx context.Context, c *CreditCard) error {
	return s.repo.UpdateCard(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.DeleteCard(ctx, id)
}
