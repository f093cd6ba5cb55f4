package model

import "time"

// Severity of an alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is a write-once record derived from detector and engagement
// output. Payload carries the type-specific fields; persisting and
// delivering alerts is the job of collaborators, the core only
// computes the value.
type Alert struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	Severity  Severity               `json:"severity"`
	Title     string                 `json:"title"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}
