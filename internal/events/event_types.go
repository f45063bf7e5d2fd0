package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRedemptionCreated EventType = "redemption_created"
	EventImportCompleted   EventType = "import_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TeamName  string      `json:"team_name"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RedemptionCreatedPayload payload.
type RedemptionCreatedPayload struct {
	StaffPassID string    `json:"staff_pass_id"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// ImportCompletedPayload payload.
type ImportCompletedPayload struct {
	Teams int `json:"teams"`
	Staff int `json:"staff"`
}
