package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
)

func TestDaysInMonth(t *testing.T) {
	type testCase struct {
		name  string
		year  int
		month time.Month
		want  int
	}

	tests := []testCase{
		{name: "January", year: 2024, month: time.January, want: 31},
		{name: "April", year: 2024, month: time.April, want: 30},
		{name: "February leap", year: 2024, month: time.February, want: 29},
		{name: "February non-leap", year: 2023, month: time.February, want: 28},
		{name: "February century", year: 1900, month: time.February, want: 28},
		{name: "February 400 year", year: 2000, month: time.February, want: 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, calendar.MustParse("2023-02-28"), calendar.Clamp(2023, time.February, 31))
	assert.Equal(t, calendar.MustParse("2024-02-29"), calendar.Clamp(2024, time.February, 31))
	assert.Equal(t, calendar.MustParse("2025-01-15"), calendar.Clamp(2024, 13, 15))
	assert.Equal(t, calendar.MustParse("2023-12-31"), calendar.Clamp(2024, 0, 31))
	assert.Equal(t, calendar.MustParse("2024-03-01"), calendar.Clamp(2024, time.March, 0))
}

func TestDate_Arithmetic(t *testing.T) {
	d := calendar.MustParse("2024-02-28")

	assert.Equal(t, calendar.MustParse("2024-02-29"), d.AddDays(1))
	assert.Equal(t, calendar.MustParse("2024-03-01"), d.AddDays(2))
	assert.Equal(t, calendar.MustParse("2023-12-31"), calendar.MustParse("2024-01-01").AddDays(-1))
	assert.Equal(t, 2, d.DaysUntil(calendar.MustParse("2024-03-01")))
	assert.Equal(t, -58, d.DaysUntil(calendar.MustParse("2024-01-01")))

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Equal(t, 0, d.Compare(calendar.New(2024, time.February, 28)))
	assert.True(t, d.Between(d, d))
}

func TestDate_Bounds(t *testing.T) {
	d := calendar.MustParse("2024-05-10")

	start := d.In(time.UTC)
	end := d.EndOfDay(time.UTC)

	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, d, calendar.DateOf(end))
	assert.Equal(t, calendar.MustParse("2024-05-11"), calendar.DateOf(end.Add(time.Nanosecond)))
}

func TestParse(t *testing.T) {
	d, err := calendar.Parse("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	d, err = calendar.Parse("2024-03-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = calendar.Parse("01/03/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date    calendar.Date                 `json:"date"`
		Amounts map[calendar.Date]json.Number `json:"amounts"`
	}

	in := payload{
		Date:    calendar.MustParse("2024-03-01"),
		Amounts: map[calendar.Date]json.Number{calendar.MustParse("2024-03-02"): "20"},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-01","amounts":{"2024-03-02":20}}`, string(b))

	var out payload
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestWeek(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	wed := calendar.MustParse("2024-03-06")
	assert.Equal(t, calendar.MustParse("2024-03-03"), calendar.WeekStart(wed))
	assert.Equal(t, calendar.MustParse("2024-03-03"), calendar.WeekStart(calendar.MustParse("2024-03-03")))

	loc := time.UTC
	assert.True(t, calendar.SameWeek(wed.Noon(loc), calendar.MustParse("2024-03-09").Noon(loc)))
	assert.False(t, calendar.SameWeek(wed.Noon(loc), calendar.MustParse("2024-03-10").Noon(loc)))

	assert.True(t, calendar.SameDay(wed.In(loc), wed.EndOfDay(loc)))
	assert.False(t, calendar.SameDay(wed.In(loc), wed.AddDays(1).In(loc)))
	assert.Equal(t, "2024-03-06", calendar.FormatISO(wed.Noon(loc)))
}

func TestRange(t *testing.T) {
	days := calendar.Range(calendar.MustParse("2024-02-27"), calendar.MustParse("2024-03-01"))
	require.Len(t, days, 4)
	assert.Equal(t, calendar.MustParse("2024-02-29"), days[2])

	assert.Empty(t, calendar.Range(calendar.MustParse("2024-03-01"), calendar.MustParse("2024-02-01")))
}

func TestDateSet(t *testing.T) {
	a := calendar.MustParse("2024-03-01")
	b := calendar.MustParse("2024-03-05")
	c := calendar.MustParse("2024-03-03")

	s := calendar.NewDateSet(b, a, b)
	assert.Equal(t, calendar.DateSet{a, b}, s)

	withC := s.With(c)
	assert.Equal(t, calendar.DateSet{a, c, b}, withC)
	assert.Equal(t, calendar.DateSet{a, b}, s, "receiver must not change")

	assert.Equal(t, s, withC.Toggle(c))
	assert.Nil(t, calendar.NewDateSet(a).Without(a))
	assert.Equal(t, calendar.DateSet{c, b}, withC.Between(c, b))

	var decoded calendar.DateSet
	require.NoError(t, json.Unmarshal([]byte(`["2024-03-05","2024-03-01","2024-03-05"]`), &decoded))
	assert.Equal(t, s, decoded)
}
