package types

import (
	"time"

	"github.com/google/uuid"
)

type LlmInteraction struct {
	ID           uuid.UUID `json:"id"`
	Place        string    `json:"place"`
	Prompt       string    `json:"prompt"`
	ResponseText string    `json:"response_text"`
	ModelUsed    string    `json:"model_used"`
	LatencyMs    int       `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}
