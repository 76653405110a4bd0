package models

import (
	"fmt"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
)

// MissionType distinguishes campaign objectives from special missions
type MissionType string

const (
	MissionCampaign MissionType = "campaign"
	MissionSpecial  MissionType = "special"
)

// MissionResult is empty while a mission is active
type MissionResult string

const (
	MissionActive    MissionResult = ""
	MissionSucceeded MissionResult = "success"
	MissionFailed    MissionResult = "failure"
)

// Mission is a campaign objective or a special mission from the book
type Mission struct {
	ID              int            `json:"id"`
	Type            MissionType    `json:"mission_type"`
	OriginWorld     string         `json:"origin_world,omitempty"`
	ExecutionPlace  string         `json:"execution_place"`
	MaxDate         *calendar.Date `json:"max_date,omitempty"`
	ObjectiveNumber *int           `json:"objective_number,omitempty"`
	MissionCode     string         `json:"mission_code,omitempty"`
	BookPage        *int           `json:"book_page,omitempty"`
	Result          MissionResult  `json:"result"`
	CreatedDate     calendar.Date  `json:"created_date"`
	CompletedDate   *calendar.Date `json:"completed_date,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// Description returns a short human label for logs
func (m *Mission) Description() string {
	if m.Type == MissionCampaign {
		if m.ObjectiveNumber != nil {
			return fmt.Sprintf("Campaign objective #%d", *m.ObjectiveNumber)
		}
		return "Campaign objective"
	}
	if m.BookPage != nil {
		return fmt.Sprintf("Special mission %s (p. %d)", m.MissionCode, *m.BookPage)
	}
	return fmt.Sprintf("Special mission %s", m.MissionCode)
}

// IsActive reports whether the mission is still unresolved
func (m *Mission) IsActive() bool {
	return m.Result == MissionActive
}
