package card_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/card"
	cardHandler "github.com/MrJamesThe3rd/metadia/internal/http/card"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/testutil"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_DeleteDetachesObligations(t *testing.T) {
	ctx := context.Background()
	st, _ := testutil.NewStore(t)

	r := chi.NewRouter()
	r.Route("/cards", cardHandler.NewHandler(card.NewService(st)).Routes)

	rec := do(t, r, http.MethodPost, "/cards/", `{"name":"Nubank","color":"#8a05be","limit":"2500"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c card.CreditCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.True(t, decimal.NewFromInt(2500).Equal(c.Limit))

	obligations := obligation.NewService(st)
	for _, title := range []string{"Streaming", "Seguro"} {
		_, err := obligations.Create(ctx, obligation.CreateParams{
			Title:      title,
			Amount:     decimal.NewFromInt(50),
			Type:       transaction.TypeExpense,
			CardID:     &c.ID,
			Recurrence: obligation.RecurrenceMonthly,
			StartDate:  calendar.MustParse("2024-03-01"),
		})
		require.NoError(t, err)
	}

	rec = do(t, r, http.MethodPut, "/cards/"+c.ID.String(), `{"name":"Nubank Ultravioleta","limit":"0"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodDelete, "/cards/"+c.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"detachedObligations":2}`, rec.Body.String())

	remaining, err := obligations.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	for _, o := range remaining {
		assert.Nil(t, o.CardID)
	}

	rec = do(t, r, http.MethodGet, "/cards/", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	st, _ := testutil.NewStore(t)

	r := chi.NewRouter()
	r.Route("/cards", cardHandler.NewHandler(card.NewService(st)).Routes)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/cards/", `{"name":"x","limit":"-5"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/cards/", `{"limit":"5"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/cards/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/cards/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/cards/"+uuid.NewString(), `{"name":"x"}`).Code)
}
