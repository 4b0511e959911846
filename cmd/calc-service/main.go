package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	ccache "github.com/radieske/arb-calc-poc/internal/calc-service/cache"
	httpapi "github.com/radieske/arb-calc-poc/internal/calc-service/http"
	"github.com/radieske/arb-calc-poc/internal/calc-service/pubsub"
	"github.com/radieske/arb-calc-poc/internal/calc-service/ws"
	"github.com/radieske/arb-calc-poc/internal/shared/cache"
	"github.com/radieske/arb-calc-poc/internal/shared/config"
	"github.com/radieske/arb-calc-poc/internal/shared/logger"
	"github.com/radieske/arb-calc-poc/internal/shared/metrics"
)

// Métricas Prometheus do serviço
var (
	calcTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calc_requests_total",
		Help: "Cálculos de split executados",
	})
	arbsFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calc_arbitrages_found_total",
		Help: "Cálculos que encontraram arbitragem real",
	})
	errorsBy = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calc_errors_total",
		Help: "Erros por estágio",
	}, []string{"stage"})
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calc_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calc_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
)

func main() {
	_ = godotenv.Load() // .env opcional em dev

	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com cache Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("redis connected")

	prometheus.MustRegister(calcTotal, arbsFound, errorsBy, wsConnections, wsMessagesSent)

	// broadcast de oportunidades via Redis Pub/Sub
	broadcaster := pubsub.NewRedisBroadcaster(rdb, cfg.ArbPubSubChannel)

	// hub WebSocket do calculador
	hub := ws.NewHub(log, broadcaster, func(r *http.Request) bool { return true })
	hub.DefaultSamples = cfg.CurveDefaultSamples
	hub.MaxSamples = cfg.CurveMaxSamples
	hub.DefaultMaxOdd = cfg.CurveDefaultMaxOdd
	hub.OnConnected = wsConnections.Inc
	hub.OnDisconnected = wsConnections.Dec
	hub.OnCalculated = calcTotal.Inc
	hub.OnArbFound = arbsFound.Inc
	hub.OnSent = wsMessagesSent.Inc
	hub.OnError = func(stage string) { errorsBy.WithLabelValues(stage).Inc() }

	// repassa avisos do canal Redis para os clientes inscritos
	ws.StartRedisSubscriber(context.Background(), rdb, hub, cfg.ArbPubSubChannel)

	// API REST + página interativa
	api := &httpapi.API{
		Log:                 log,
		Cache:               ccache.New(rdb),
		Publ:                broadcaster,
		CurveDefaultSamples: cfg.CurveDefaultSamples,
		CurveMaxSamples:     cfg.CurveMaxSamples,
		CurveDefaultMaxOdd:  cfg.CurveDefaultMaxOdd,
		CurveCacheTTL:       cfg.CurveCacheTTL,
		OnCalculated:        calcTotal.Inc,
		OnArbFound:          arbsFound.Inc,
		OnError:             func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// metrics/health em porta separada; healthz valida o Redis
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health server starting", zap.String("addr", ":"+cfg.MetricsPort))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(hub),
	}

	log.Info("calc-service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
