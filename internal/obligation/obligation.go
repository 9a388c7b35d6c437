package obligation

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

var ErrNotFound = errors.New("obligation not found")

// Recurrence is how an obligation repeats.
type Recurrence string

const (
	RecurrenceMonthly      Recurrence = "monthly"
	RecurrenceInstallments Recurrence = "installments"
	RecurrenceSingle       Recurrence = "single"
)

// Obligation is a template that generates dated occurrences: a monthly bill, a purchase split
// into installments, or a one-off charge. Income obligations (a fixed allowance, a rent received)
// use the same shape with Type income.
type Obligation struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Category      string           `json:"category"`
	Amount        decimal.Decimal  `json:"amount"`
	Type          transaction.Type `json:"type"`
	CardID        *uuid.UUID       `json:"cardId,omitempty"`
	Recurrence    Recurrence       `json:"recurrence"`
	StartDate     calendar.Date    `json:"startDate"`
	Installments  *int             `json:"installments,omitempty"`
	ExcludedDates calendar.DateSet `json:"excludedDates,omitempty"`
	PaidDates     calendar.DateSet `json:"paidDates,omitempty"`
}

// MissingInstallmentCount reports an installments obligation without a usable count. Such an
// obligation expands to a single occurrence; callers surface it instead of guessing a count.
func (o *Obligation) MissingInstallmentCount() bool {
	return o.Recurrence == RecurrenceInstallments && (o.Installments == nil || *o.Installments <= 0)
}

// Clone returns a deep copy of o.
func (o *Obligation) Clone() *Obligation {
	c := *o

	if o.CardID != nil {
		c.CardID = new(*o.CardID)
	}

	if o.Installments != nil {
		c.Installments = new(*o.Installments)
	}

	c.ExcludedDates = slices.Clone(o.ExcludedDates)
	c.PaidDates = slices.Clone(o.PaidDates)

	return &c
}

// TogglePaid returns a copy of o with the occurrence on date marked paid, or unmarked if it was.
func TogglePaid(o *Obligation, date calendar.Date) *Obligation {
	c := o.Clone()
	c.PaidDates = o.PaidDates.Toggle(date)

	return c
}

// ToggleExcluded returns a copy of o with the occurrence on date skipped, or restored if it was.
func ToggleExcluded(o *Obligation, date calendar.Date) *Obligation {
	c := o.Clone()
	c.ExcludedDates = o.ExcludedDates.Toggle(date)

	return c
}

// WithoutCard returns a copy of o with the card reference cleared.
func WithoutCard(o *Obligation) *Obligation {
	c := o.Clone()
	c.CardID = nil

	return c
}
