package matching_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchingHandler "github.com/MrJamesThe3rd/metadia/internal/http/matching"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/testutil"
)

func TestHandler_LearnAndSuggest(t *testing.T) {
	st, _ := testutil.NewStore(t)

	r := chi.NewRouter()
	r.Route("/matching", matchingHandler.NewHandler(matching.NewService(st)).Routes)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

		return rec
	}

	rec := do(http.MethodPost, "/matching/", `{"rawPattern":"POSTO SHELL","preferredDescription":"Combustível"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(http.MethodGet, "/matching/suggest?raw_description=COMPRA+POSTO+SHELL+LISBOA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rawDescription":"COMPRA POSTO SHELL LISBOA","preferredDescription":"Combustível"}`, rec.Body.String())

	rec = do(http.MethodGet, "/matching/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rawPattern":"POSTO SHELL"`)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/matching/suggest", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/matching/", `{"rawPattern":" "}`).Code)
}
