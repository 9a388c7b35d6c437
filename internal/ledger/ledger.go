// Package ledger totals ad-hoc transactions and obligation occurrences over a period.
//
// Transactions are money that already moved and always count. Expense occurrences are planned
// money until they are marked paid, so only paid ones reach Expense and Balance; unpaid ones show
// up in Pending.
package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type Options struct {
	// FuelKeyword is matched as a case-insensitive substring of descriptions and categories.
	FuelKeyword string
}

type Summary struct {
	Start      calendar.Date                 `json:"start"`
	End        calendar.Date                 `json:"end"`
	Income     decimal.Decimal               `json:"income"`
	Expense    decimal.Decimal               `json:"expense"`
	Balance    decimal.Decimal               `json:"balance"`
	Planned    decimal.Decimal               `json:"planned"`
	Pending    decimal.Decimal               `json:"pending"`
	Fuel       decimal.Decimal               `json:"fuel"`
	ByCategory map[string]decimal.Decimal    `json:"byCategory"`
	ByCard     map[uuid.UUID]decimal.Decimal `json:"byCard"`
}

// Aggregate totals everything dated within [start, end].
func Aggregate(txs []*transaction.Transaction, occs []obligation.Occurrence, start, end calendar.Date, opts Options) Summary {
	s := Summary{
		Start:      start,
		End:        end,
		ByCategory: make(map[string]decimal.Decimal),
		ByCard:     make(map[uuid.UUID]decimal.Decimal),
	}

	keyword := strings.ToLower(strings.TrimSpace(opts.FuelKeyword))

	settle := func(label string, amount decimal.Decimal) {
		s.Expense = s.Expense.Add(amount)
		s.ByCategory[label] = s.ByCategory[label].Add(amount)

		if keyword != "" && strings.Contains(strings.ToLower(label), keyword) {
			s.Fuel = s.Fuel.Add(amount)
		}
	}

	for _, tx := range txs {
		if !tx.Day().Between(start, end) {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case transaction.TypeExpense:
			settle(tx.Description, tx.Amount)
		}
	}

	for _, occ := range occs {
		if !occ.Date.Between(start, end) {
			continue
		}

		switch occ.Type {
		case transaction.TypeIncome:
			s.Income = s.Income.Add(occ.Amount)
		case transaction.TypeExpense:
			s.Planned = s.Planned.Add(occ.Amount)

			if occ.CardID != nil {
				s.ByCard[*occ.CardID] = s.ByCard[*occ.CardID].Add(occ.Amount)
			}

			if !occ.IsPaid {
				s.Pending = s.Pending.Add(occ.Amount)
				continue
			}

			settle(categoryOf(occ), occ.Amount)
		}
	}

	s.Balance = s.Income.Sub(s.Expense)

	return s
}

func categoryOf(occ obligation.Occurrence) string {
	if occ.Category != "" {
		return occ.Category
	}

	return occ.Title
}

// CardUsage is how much of a card's limit the period's obligations take.
type CardUsage struct {
	Card      *card.CreditCard `json:"card"`
	Used      decimal.Decimal  `json:"used"`
	Available *decimal.Decimal `json:"available,omitempty"`
	Exceeded  bool             `json:"exceeded"`
}

// Usage reports every card against its limit, in the order given. Unlimited cards have no
// Available amount and are never exceeded.
func Usage(cards []*card.CreditCard, s Summary) []CardUsage {
	out := make([]CardUsage, 0, len(cards))

	for _, c := range cards {
		u := CardUsage{Card: c, Used: s.ByCard[c.ID]}

		if !c.Unlimited() {
			u.Available = new(c.Limit.Sub(u.Used))
			u.Exceeded = u.Used.GreaterThan(c.Limit)
		}

		out = append(out, u)
	}

	return out
}

// WeekIncome sums the income transactions in the week containing today.
func WeekIncome(txs []*transaction.Transaction, today calendar.Date) decimal.Decimal {
	start := calendar.WeekStart(today)
	end := start.AddDays(6)

	total := decimal.Zero

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome && tx.Day().Between(start, end) {
			total = total.Add(tx.Amount)
		}
	}

	return total
}
