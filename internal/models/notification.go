package models

import (
	"time"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
)

// Notification is pushed to stream subscribers after a game changes
type Notification struct {
	GameID    string        `json:"game_id"`
	Kind      string        `json:"kind"`
	GameDate  calendar.Date `json:"game_date"`
	Message   string        `json:"message,omitempty"`
	Data      any           `json:"data,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
