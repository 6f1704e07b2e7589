package models

import "time"

// PanelEvent is a single entry of the panel's action/error log.
type PanelEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // EventCommand | EventError | EventReload
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Panel event types.
const (
	EventCommand = "COMMAND"
	EventError   = "ERROR"
	EventReload  = "RELOAD"
)
