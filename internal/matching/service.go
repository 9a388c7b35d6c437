// Package matching learns which description a user prefers for a raw bank statement line, so
// imported rows land under the right category key (the fuel keyword included).
package matching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

// Mapping rewrites statement lines containing RawPattern to PreferredDescription.
type Mapping struct {
	RawPattern           string    `json:"rawPattern"`
	PreferredDescription string    `json:"preferredDescription"`
	CreatedAt            time.Time `json:"createdAt"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	ListMappings(ctx context.Context) ([]Mapping, error)
	CreateMapping(ctx context.Context, m Mapping) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Suggest tries to find a preferred description for the given raw description.
// Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (string, error) {
	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		return "", fmt.Errorf("listing mappings: %w", err)
	}

	return Best(mappings, rawDescription), nil
}

// Learn remembers a new mapping between a raw pattern and a preferred description.
func (s *Service) Learn(ctx context.Context, rawPattern, preferredDescription string) error {
	return s.repo.CreateMapping(ctx, Mapping{
		RawPattern:           strings.TrimSpace(rawPattern),
		PreferredDescription: strings.TrimSpace(preferredDescription),
		CreatedAt:            s.now(),
	})
}

func (s *Service) List(ctx context.Context) ([]Mapping, error) {
	return s.repo.ListMappings(ctx)
}

// Apply fills in the description of every imported row that has a learned mapping. Rows without
// one keep their description. params is not modified.
func (s *Service) Apply(ctx context.Context, params []transaction.CreateParams) ([]transaction.CreateParams, error) {
	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}

	out := make([]transaction.CreateParams, len(params))

	for i, p := range params {
		if preferred := Best(mappings, p.RawDescription); preferred != "" {
			p.Description = preferred
		}

		out[i] = p
	}

	return out, nil
}

// Best returns the preferred description of the mapping whose pattern occurs in raw, compared
// case-insensitively. The longest pattern wins; among equal lengths the newest one does.
func Best(mappings []Mapping, raw string) string {
	lower := strings.ToLower(raw)

	var best *Mapping

	for i := range mappings {
		m := &mappings[i]
		if m.RawPattern == "" || !strings.Contains(lower, strings.ToLower(m.RawPattern)) {
			continue
		}

		if best == nil ||
			len(m.RawPattern) > len(best.RawPattern) ||
			len(m.RawPattern) == len(best.RawPattern) && m.CreatedAt.After(best.CreatedAt) {
			best = m
		}
	}

	if best == nil {
		return ""
	}

	return best.PreferredDescription
}
