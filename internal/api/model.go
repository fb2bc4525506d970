package api

import (
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulateRequest is the body of POST /v1/simulate.
type SimulateRequest struct {
	domain.SimulationInput
	IncludeMonthly bool `json:"includeMonthly"`
}

// ACFRequest is the body of POST /v1/acf.
type ACFRequest struct {
	UnitCount    int `json:"unitCount"`
	TenureMonths int `json:"tenureMonths"`
}

// Metadata accompanies every response.
type Metadata struct {
	RequestID   string `json:"requestId"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt"`
	DurationMs  int64  `json:"durationMs"`
}

// Response wraps a successful result.
type Response struct {
	Metadata Metadata `json:"metadata"`
	Result   any      `json:"result"`
}

// LineageResult is the payload of GET /v1/lineage.
type LineageResult struct {
	Horizon        int             `json:"horizon"`
	Units          int             `json:"units"`
	Births         []domain.Birth  `json:"births"`
	AnimalsPerUnit int             `json:"animalsPerUnit"`
	OffspringValue decimal.Decimal `json:"offspringValue"` // per unit
	HerdValue      decimal.Decimal `json:"herdValue"`
}

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	RequestID string            `json:"requestId"`
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}
