package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	txHandler "github.com/MrJamesThe3rd/metadia/internal/http/transaction"
	"github.com/MrJamesThe3rd/metadia/internal/testutil"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	st, _ := testutil.NewStore(t)

	r := chi.NewRouter()
	r.Route("/transactions", txHandler.NewHandler(transaction.NewService(st)).Routes)

	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

type txBody struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func TestHandler_CreateListUpdateDelete(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/transactions/",
		`{"amount":"152.30","type":"income","description":"Uber","date":"2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "152.3", created.Amount)
	assert.Equal(t, "2024-03-10", created.Date)

	rec = do(t, srv, http.MethodPost, "/transactions/",
		`{"amount":"80","type":"expense","description":"Combustível","date":"2024-03-11"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/transactions/?type=income", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Uber", listed[0].Description)

	rec = do(t, srv, http.MethodGet, "/transactions/?start_date=2024-03-11&end_date=2024-03-31", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Combustível", listed[0].Description)

	rec = do(t, srv, http.MethodPatch, "/transactions/"+created.ID, `{"amount":"160","date":"2024-03-09"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/transactions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "160", got.Amount)
	assert.Equal(t, "2024-03-09", got.Date)

	rec = do(t, srv, http.MethodDelete, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Validation(t *testing.T) {
	type testCase struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantBody string
	}

	tests := []testCase{
		{
			name:     "NegativeAmount",
			method:   http.MethodPost,
			target:   "/transactions/",
			body:     `{"amount":"-1","type":"income","description":"x","date":"2024-03-10"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "amount must be at least 0",
		},
		{
			name:     "UnknownType",
			method:   http.MethodPost,
			target:   "/transactions/",
			body:     `{"amount":"1","type":"transfer","description":"x","date":"2024-03-10"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "type must be one of",
		},
		{
			name:     "BlankDescription",
			method:   http.MethodPost,
			target:   "/transactions/",
			body:     `{"amount":"1","type":"income","description":"  ","date":"2024-03-10"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "description must not be blank",
		},
		{
			name:     "MissingDate",
			method:   http.MethodPost,
			target:   "/transactions/",
			body:     `{"amount":"1","type":"income","description":"x"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "date is required",
		},
		{
			name:     "BadDate",
			method:   http.MethodPost,
			target:   "/transactions/",
			body:     `{"amount":"1","type":"income","description":"x","date":"10/03/2024"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "invalid request body",
		},
		{
			name:     "BadListType",
			method:   http.MethodGet,
			target:   "/transactions/?type=other",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "InvalidID",
			method:   http.MethodGet,
			target:   "/transactions/nope",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "UpdateUnknown",
			method:   http.MethodPatch,
			target:   "/transactions/" + uuid.NewString(),
			body:     `{"description":"x"}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "DeleteUnknown",
			method:   http.MethodDelete,
			target:   "/transactions/" + uuid.NewString(),
			wantCode: http.StatusNotFound,
		},
	}

	srv := newServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
