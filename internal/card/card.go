package card

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("credit card not found")

// CreditCard groups expense obligations charged to the same card. A zero Limit means unlimited.
type CreditCard struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Limit decimal.Decimal `json:"limit"`
}

func (c *CreditCard) Unlimited() bool {
	return !c.Limit.IsPositive()
}
