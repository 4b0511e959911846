package dto

// CalculateRequest é o corpo de POST /v1/arbitrage
type CalculateRequest struct {
	Odds       []float64 `json:"odds"`        // odds decimais, uma por resultado
	StakeCents int64     `json:"stake_cents"` // banca total em centavos
}

// CurveQuery são os parâmetros de GET /v1/arbitrage/curve
// Também serve de chave para o cache de curvas
type CurveQuery struct {
	KnownOdd float64 // odd conhecida do primeiro resultado
	MaxOdd   float64 // limite superior da segunda odd
	Samples  int     // quantidade de pontos
}
