package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one ad-hoc cash movement. Date carries a fixed time of day; period math only
// looks at its calendar day.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Type           Type            `json:"type"`
	Description    string          `json:"description"`
	RawDescription string          `json:"rawDescription,omitempty"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// Day returns the calendar day the transaction belongs to.
func (t *Transaction) Day() calendar.Date {
	return calendar.DateOf(t.Date)
}

// StoredTime pins t to noon of its own calendar day so that a later timezone shift cannot move
// the transaction to a neighbouring day.
func StoredTime(t time.Time) time.Time {
	return calendar.DateOf(t).Noon(t.Location())
}
