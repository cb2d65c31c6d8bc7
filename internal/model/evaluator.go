package model

import "time"

// EvaluatorProfile is the read-only display profile for a human evaluator.
// Profile management lives outside this service.
type EvaluatorProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
