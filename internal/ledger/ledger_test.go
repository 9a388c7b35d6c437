package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/ledger"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func day(s string) calendar.Date { return calendar.MustParse(s) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(typ transaction.Type, amount, desc, date string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          uuid.New(),
		Amount:      dec(amount),
		Type:        typ,
		Description: desc,
		Date:        day(date).Noon(time.Local),
	}
}

func occ(typ transaction.Type, amount, category, date string, paid bool) obligation.Occurrence {
	return obligation.Occurrence{
		Obligation: obligation.Obligation{
			ID:       uuid.New(),
			Title:    category,
			Category: category,
			Amount:   dec(amount),
			Type:     typ,
		},
		Date:   day(date),
		IsPaid: paid,
	}
}

func TestAggregate(t *testing.T) {
	cardID := uuid.New()

	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "300", "Uber", "2024-03-11"),
		tx(transaction.TypeIncome, "150.50", "99", "2024-03-12"),
		tx(transaction.TypeExpense, "80", "Combustível", "2024-03-12"),
		tx(transaction.TypeExpense, "40", "combustivel posto", "2024-03-13"),
		tx(transaction.TypeExpense, "999", "Outside", "2024-05-01"),
	}

	rent := occ(transaction.TypeExpense, "500", "Housing", "2024-03-10", true)
	phone := occ(transaction.TypeExpense, "60", "Bills", "2024-03-15", false)
	phone.CardID = &cardID
	allowance := occ(transaction.TypeIncome, "200", "Allowance", "2024-03-20", false)

	s := ledger.Aggregate(txs, []obligation.Occurrence{rent, phone, allowance},
		day("2024-03-10"), day("2024-04-09"), ledger.Options{FuelKeyword: "Combustível"})

	assert.True(t, dec("650.50").Equal(s.Income), "income %s", s.Income)
	assert.True(t, dec("620").Equal(s.Expense), "expense %s", s.Expense)
	assert.True(t, dec("30.50").Equal(s.Balance), "balance %s", s.Balance)
	assert.True(t, dec("560").Equal(s.Planned))
	assert.True(t, dec("60").Equal(s.Pending))
	assert.True(t, dec("80").Equal(s.Fuel), "only the accented spelling matches the keyword")
	assert.True(t, dec("500").Equal(s.ByCategory["Housing"]))
	assert.NotContains(t, s.ByCategory, "Bills")
	assert.True(t, dec("60").Equal(s.ByCard[cardID]))
}

func TestAggregate_PaidAsymmetry(t *testing.T) {
	bill := occ(transaction.TypeExpense, "100", "Bills", "2024-03-15", false)
	start, end := day("2024-03-01"), day("2024-03-31")

	unpaid := ledger.Aggregate(nil, []obligation.Occurrence{bill}, start, end, ledger.Options{})
	assert.True(t, unpaid.Expense.IsZero())
	assert.True(t, unpaid.Balance.IsZero())

	bill.IsPaid = true
	paid := ledger.Aggregate(nil, []obligation.Occurrence{bill}, start, end, ledger.Options{})
	assert.True(t, dec("100").Equal(paid.Expense))
	assert.True(t, dec("-100").Equal(paid.Balance))
}

func TestAggregate_EmptyKeywordMatchesNothing(t *testing.T) {
	txs := []*transaction.Transaction{tx(transaction.TypeExpense, "10", "Anything", "2024-03-01")}

	s := ledger.Aggregate(txs, nil, day("2024-03-01"), day("2024-03-31"), ledger.Options{})
	assert.True(t, s.Fuel.IsZero())
}

func TestUsage(t *testing.T) {
	limited := &card.CreditCard{ID: uuid.New(), Name: "Gold", Limit: dec("100")}
	unlimited := &card.CreditCard{ID: uuid.New(), Name: "Black"}

	s := ledger.Summary{ByCard: map[uuid.UUID]decimal.Decimal{
		limited.ID:   dec("120"),
		unlimited.ID: dec("5000"),
	}}

	got := ledger.Usage([]*card.CreditCard{limited, unlimited}, s)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Available)
	assert.True(t, dec("-20").Equal(*got[0].Available))
	assert.True(t, got[0].Exceeded)

	assert.Nil(t, got[1].Available)
	assert.False(t, got[1].Exceeded)
}

func TestWeekIncome(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "10", "a", "2024-03-09"),
		tx(transaction.TypeIncome, "20", "b", "2024-03-10"),
		tx(transaction.TypeIncome, "30", "c", "2024-03-16"),
		tx(transaction.TypeExpense, "99", "d", "2024-03-12"),
		tx(transaction.TypeIncome, "40", "e", "2024-03-17"),
	}

	assert.True(t, dec("50").Equal(ledger.WeekIncome(txs, day("2024-03-13"))))
}
