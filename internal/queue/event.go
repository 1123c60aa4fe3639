// Package queue defines message payloads exchanged over the message broker.
package queue

// InteractionRecordedEvent is published after an interaction log entry is
// persisted. It carries enough information for downstream consumers to
// log or feed analytics without querying the primary database.
type InteractionRecordedEvent struct {
	LogID        uint64  `json:"log_id"`
	UserID       uint64  `json:"user_id"`
	ContentID    uint64  `json:"content_id"`
	ContentTitle string  `json:"content_title"`
	Type         string  `json:"interaction_type"`
	RatingValue  float64 `json:"rating_value,omitempty"`
	RecordedAt   string  `json:"recorded_at"`
}
