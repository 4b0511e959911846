package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/arb-calc-poc/internal/calc-service/cache"
	"github.com/radieske/arb-calc-poc/internal/calc-service/dto"
	"github.com/radieske/arb-calc-poc/internal/calc-service/ws"
)

type stubPublisher struct {
	published []ws.Opportunity
}

func (s *stubPublisher) PublishArbFound(_ context.Context, opp ws.Opportunity) error {
	s.published = append(s.published, opp)
	return nil
}

func newTestAPI(publ ws.Publisher) *API {
	return &API{
		Log:                 zap.NewNop(),
		Publ:                publ,
		CurveDefaultSamples: 50,
		CurveMaxSamples:     100,
		CurveDefaultMaxOdd:  10.0,
		CurveCacheTTL:       time.Second,
	}
}

func doRequest(t *testing.T, api *API, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	api.Router(nil).ServeHTTP(rec, req)
	return rec
}

func TestCalculateEndpoint(t *testing.T) {
	publ := &stubPublisher{}
	api := newTestAPI(publ)

	rec := doRequest(t, api, http.MethodPost, "/v1/arbitrage",
		`{"odds":[2.0,2.2],"stake_cents":10000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Plan.Arbitrage)
	assert.InDelta(t, -0.04545, resp.Plan.Margin, 1e-4)
	assert.Equal(t, int64(5239), resp.Rounded.Allocations[0].StakeCents)
	assert.Equal(t, int64(4761), resp.Rounded.Allocations[1].StakeCents)
	assert.Equal(t, int64(474), resp.Rounded.ProfitCents)

	// arbitragem real vira aviso publicado
	require.Len(t, publ.published, 1)
	assert.Equal(t, []float64{2.0, 2.2}, publ.published[0].Odds)
	assert.NotEmpty(t, publ.published[0].ID)
}

func TestCalculateNoArbitrageDoesNotPublish(t *testing.T) {
	publ := &stubPublisher{}
	api := newTestAPI(publ)

	rec := doRequest(t, api, http.MethodPost, "/v1/arbitrage",
		`{"odds":[1.9,1.9],"stake_cents":10000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Plan.Arbitrage)
	assert.Negative(t, resp.Plan.Profit)
	assert.Empty(t, publ.published)
}

func TestCalculateValidation(t *testing.T) {
	api := newTestAPI(nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{"odds":`},
		{"odd equal to one", `{"odds":[1.0,5.0],"stake_cents":10000}`},
		{"empty odds", `{"odds":[],"stake_cents":10000}`},
		{"single odd", `{"odds":[2.0],"stake_cents":10000}`},
		{"negative stake", `{"odds":[2.0,2.2],"stake_cents":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, api, http.MethodPost, "/v1/arbitrage", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCurveEndpoint(t *testing.T) {
	api := newTestAPI(nil)

	rec := doRequest(t, api, http.MethodGet, "/v1/arbitrage/curve?known_odd=2.0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CurveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 2.0, resp.KnownOdd)
	assert.Equal(t, 10.0, resp.MaxOdd) // default da config
	assert.InDelta(t, 2.0, resp.BreakEvenOdd, 1e-9)
	assert.Len(t, resp.Points, 50) // default da config
}

// Entrada de cache que não desserializa tem que virar miss: a curva é
// recalculada e servida, nunca uma resposta zerada
func TestCurveRecomputesOnCorruptedCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	api := newTestAPI(nil)
	api.Cache = cache.New(rdb)

	require.NoError(t, mr.Set("curve:2:10:50", "{not-json"))

	rec := doRequest(t, api, http.MethodGet, "/v1/arbitrage/curve?known_odd=2.0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CurveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2.0, resp.KnownOdd)
	assert.InDelta(t, 2.0, resp.BreakEvenOdd, 1e-9)
	require.Len(t, resp.Points, 50)

	// a entrada corrompida foi sobrescrita pela curva recalculada
	rec = doRequest(t, api, http.MethodGet, "/v1/arbitrage/curve?known_odd=2.0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cached dto.CurveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cached))
	assert.Equal(t, resp, cached)
}

func TestCurveValidation(t *testing.T) {
	api := newTestAPI(nil)

	cases := []struct {
		name   string
		target string
	}{
		{"missing known_odd", "/v1/arbitrage/curve"},
		{"known_odd not a number", "/v1/arbitrage/curve?known_odd=abc"},
		{"known_odd below domain", "/v1/arbitrage/curve?known_odd=1.0"},
		{"samples above limit", "/v1/arbitrage/curve?known_odd=2.0&samples=1000"},
		{"bad samples", "/v1/arbitrage/curve?known_odd=2.0&samples=abc"},
		{"bad max_odd", "/v1/arbitrage/curve?known_odd=2.0&max_odd=abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, api, http.MethodGet, tc.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestIndexPage(t *testing.T) {
	api := newTestAPI(nil)

	rec := doRequest(t, api, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Arbitrage")
}
