package config

import (
	"os"
	"strconv"
	"time"
)

// Config centraliza variáveis de ambiente e parâmetros de execução
// Inclui conexão Redis, canal de broadcast, portas e limites da curva
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "calc-service"

	RedisAddr string

	// Canal Redis Pub/Sub para avisos de arbitragem encontrada
	ArbPubSubChannel string

	// Portas do serviço atual
	HTTPPort    string // Porta pública (API REST + WS)
	MetricsPort string // Porta exclusiva para /metrics e /healthz

	// Parâmetros da curva ROI
	CurveDefaultSamples int           // pontos quando o cliente não informa
	CurveMaxSamples     int           // teto de pontos por requisição
	CurveDefaultMaxOdd  float64       // limite superior padrão da segunda odd
	CurveCacheTTL       time.Duration // validade do cache de curvas
}

// Load carrega variáveis de ambiente e define defaults para cada serviço
func Load() Config {
	svc := getEnv("SERVICE_NAME", "calc-service")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		ArbPubSubChannel: getEnv("REDIS_PUBSUB_CHANNEL", "arb_opportunities_broadcast"),

		CurveDefaultSamples: getEnvInt("CURVE_DEFAULT_SAMPLES", 500),
		CurveMaxSamples:     getEnvInt("CURVE_MAX_SAMPLES", 5000),
		CurveDefaultMaxOdd:  getEnvFloat("CURVE_DEFAULT_MAX_ODD", 100.0),
		CurveCacheTTL:       getEnvDuration("CURVE_CACHE_TTL", 30*time.Second),
	}

	// Define portas padrão conforme o SERVICE_NAME
	switch svc {
	case "calc-service":
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	default:
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
