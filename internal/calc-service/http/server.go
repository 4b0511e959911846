package httpapi

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/arb-calc-poc/internal/arbitrage"
	"github.com/radieske/arb-calc-poc/internal/calc-service/cache"
	"github.com/radieske/arb-calc-poc/internal/calc-service/dto"
	"github.com/radieske/arb-calc-poc/internal/calc-service/ws"
)

//go:embed web/index.html
var indexHTML []byte

// Erros de validação dos parâmetros de query
var (
	errKnownOddRequired = errors.New("known_odd is required and must be a number")
	errBadMaxOdd        = errors.New("max_odd must be a number")
	errBadSamples       = errors.New("samples must be an integer")
	errTooManySamples   = errors.New("samples above the configured limit")
)

// API expõe os endpoints REST do calculador de arbitragem
// Usa cache (Redis) para curvas já amostradas e publica avisos de
// arbitragem encontrada no canal de broadcast
type API struct {
	Log   *zap.Logger
	Cache *cache.Cache // cache de curvas; pode ser nil em testes
	Publ  ws.Publisher // broadcast de oportunidades; pode ser nil em testes

	// Limites e defaults da curva, vindos da config
	CurveDefaultSamples int
	CurveMaxSamples     int
	CurveDefaultMaxOdd  float64
	CurveCacheTTL       time.Duration

	// Callbacks de métricas (counters no main)
	OnCalculated func()
	OnArbFound   func()
	OnError      func(stage string)
}

// Router retorna o roteador HTTP com os endpoints REST, a página
// interativa e o endpoint WebSocket
func (a *API) Router(hub *ws.Hub) http.Handler {
	r := chi.NewRouter()
	r.Get("/", a.index)                         // página interativa
	r.Post("/v1/arbitrage", a.calculate)        // split da banca
	r.Get("/v1/arbitrage/curve", a.curve)       // curva ROI x segunda odd
	if hub != nil {
		r.Get("/ws", hub.HandleWS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// index serve a página interativa embutida no binário
func (a *API) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// calculate valida as odds e a banca, roda o split e devolve o plano
// exato junto com a versão arredondada para centavos
func (a *API) calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	plan, err := arbitrage.Split(req.Odds, req.StakeCents)
	if err != nil {
		if a.OnError != nil {
			a.OnError("calculate")
		}
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if a.OnCalculated != nil {
		a.OnCalculated()
	}

	// Arbitragem real vira aviso no canal de broadcast
	if plan.Arbitrage {
		if a.OnArbFound != nil {
			a.OnArbFound()
		}
		if a.Publ != nil {
			if err := a.Publ.PublishArbFound(r.Context(), ws.NewOpportunity(plan)); err != nil {
				a.Log.Warn("publish opportunity failed", zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusOK, dto.CalculateResponse{
		Plan:    plan,
		Rounded: arbitrage.RoundPlan(plan),
	})
}

// curve devolve os pontos da curva ROI, preferencialmente do cache
func (a *API) curve(w http.ResponseWriter, r *http.Request) {
	q, err := a.parseCurveQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var fromCache dto.CurveResponse
	if a.Cache != nil {
		if ok, _ := a.Cache.GetCurve(r.Context(), q, &fromCache); ok {
			writeJSON(w, http.StatusOK, fromCache)
			return
		}
	}

	pts, breakEven, err := arbitrage.Curve(q.KnownOdd, q.MaxOdd, q.Samples)
	if err != nil {
		if a.OnError != nil {
			a.OnError("curve")
		}
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp := dto.CurveResponse{
		KnownOdd:     q.KnownOdd,
		MaxOdd:       q.MaxOdd,
		BreakEvenOdd: breakEven,
		Points:       pts,
	}
	if a.Cache != nil {
		_ = a.Cache.SetCurve(r.Context(), q, resp, a.CurveCacheTTL) // falha de cache não derruba a resposta
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseCurveQuery lê e valida os parâmetros de GET /v1/arbitrage/curve
func (a *API) parseCurveQuery(r *http.Request) (dto.CurveQuery, error) {
	var q dto.CurveQuery

	knownOdd, err := strconv.ParseFloat(r.URL.Query().Get("known_odd"), 64)
	if err != nil {
		return q, errKnownOddRequired
	}
	q.KnownOdd = knownOdd

	q.MaxOdd = a.CurveDefaultMaxOdd
	if v := r.URL.Query().Get("max_odd"); v != "" {
		if q.MaxOdd, err = strconv.ParseFloat(v, 64); err != nil {
			return q, errBadMaxOdd
		}
	}

	q.Samples = a.CurveDefaultSamples
	if v := r.URL.Query().Get("samples"); v != "" {
		if q.Samples, err = strconv.Atoi(v); err != nil {
			return q, errBadSamples
		}
	}
	if q.Samples > a.CurveMaxSamples {
		return q, errTooManySamples
	}

	return q, nil
}
