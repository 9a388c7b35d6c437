package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/state"
	"github.com/MrJamesThe3rd/metadia/internal/testutil"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func run(t *testing.T, st *state.Store, args ...string) (string, error) {
	t.Helper()

	a := &app{now: func() time.Time { return testutil.Now }, store: st}

	var out bytes.Buffer

	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCycleCmd(t *testing.T) {
	st, _ := testutil.NewStore(t)

	out, err := run(t, st, "cycle", "--date", "2024-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-01 → 2024-03-31 (31 days)")
}

func TestGoalCmd_JSON(t *testing.T) {
	st, _ := testutil.NewStore(t)

	_, err := obligation.NewService(st).Create(context.Background(), obligation.CreateParams{
		Title:      "Rent",
		Category:   "Housing",
		Amount:     decimal.NewFromInt(310),
		Type:       transaction.TypeExpense,
		Recurrence: obligation.RecurrenceMonthly,
		StartDate:  calendar.MustParse("2024-03-05"),
	})
	require.NoError(t, err)

	out, err := run(t, st, "goal", "--json")
	require.NoError(t, err)

	var r goal.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	assert.Equal(t, goal.NotWorkedToday, r.State)
	assert.True(t, decimal.NewFromInt(310).Equal(r.CycleGoal), "cycle goal %s", r.CycleGoal)
	assert.Equal(t, 22, r.Days)
	assert.True(t, decimal.RequireFromString("14.09").Equal(r.Target), "target %s", r.Target)
}

func TestGoalCmd_ForecastCycle(t *testing.T) {
	st, _ := testutil.NewStore(t)

	out, err := run(t, st, "goal", "--cycle", "2024-05-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Cycle 2024-05-01 → 2024-05-31")
	assert.Contains(t, out, string(goal.Forecast))
}

func TestSavingsCmd(t *testing.T) {
	st, _ := testutil.NewStore(t)

	out, err := run(t, st, "savings")
	require.NoError(t, err)
	assert.Contains(t, out, "Reserve:           0.00")
	assert.Contains(t, out, "Days left in year: 297")
}

func TestHistoryCmd(t *testing.T) {
	st, _ := testutil.NewStore(t)

	out, err := run(t, st, "history", "--json")
	require.NoError(t, err)

	var days []goal.DayRecord
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	require.Len(t, days, 10)
	assert.Equal(t, "2024-03-01", days[0].Date.String())
	assert.Equal(t, "2024-03-10", days[9].Date.String())
}

func TestImportCmd(t *testing.T) {
	st, _ := testutil.NewStore(t)

	path := filepath.Join(t.TempDir(), "nubank.csv")
	csv := "Data,Valor,Identificador,Descrição\n01/03/2024,150.00,abc,Transferência recebida\n02/03/2024,-20.50,def,Posto Shell\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := run(t, st, "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "2 transactions parsed (dry run")
	assert.Empty(t, st.Snapshot().Transactions)

	out, err = run(t, st, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 parsed, 2 imported, 0 duplicates")
	assert.Len(t, st.Snapshot().Transactions, 2)

	out, err = run(t, st, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 parsed, 0 imported, 2 duplicates")
	assert.Len(t, st.Snapshot().Transactions, 2)

	out, err = run(t, st, "import", path, "--allow-duplicates")
	require.NoError(t, err)
	assert.Contains(t, out, "2 parsed, 2 imported, 2 duplicates")
	assert.Len(t, st.Snapshot().Transactions, 4)
}

func TestImportCmd_Errors(t *testing.T) {
	st, _ := testutil.NewStore(t)

	_, err := run(t, st, "import", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "opening statement")

	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	_, err = run(t, st, "import", path, "--format", "qif")
	assert.ErrorContains(t, err, "unknown statement format")
}

func TestInvalidDate(t *testing.T) {
	st, _ := testutil.NewStore(t)

	_, err := run(t, st, "summary", "--date", "10/03/2024")
	assert.ErrorContains(t, err, "invalid --date")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(&app{now: time.Now})

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"goal", "history", "cycle", "summary", "savings", "import"})
	assert.NotNil(t, root.PersistentFlags().Lookup("date"))
	assert.NotNil(t, root.PersistentFlags().Lookup("json"))
}
