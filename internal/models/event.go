package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// EventType names the kind of a scheduled event
type EventType string

const (
	EventTaskCompletion  EventType = "task_completion"
	EventSalaryPayment   EventType = "salary_payment"
	EventMissionDeadline EventType = "mission_deadline"
)

// EventTypes lists every event kind the engine dispatches
var EventTypes = []EventType{EventTaskCompletion, EventSalaryPayment, EventMissionDeadline}

// ParseEventType validates an event type name
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(EventTypes, t) {
		return "", gameerr.Validation("unknown event type %q", s)
	}
	return t, nil
}

// EventPayload is implemented only by the payload types in this file
type EventPayload interface {
	EventType() EventType
	isEventPayload()
}

// TaskCompletionPayload fires when a task's completion date is reached
type TaskCompletionPayload struct {
	TaskID     int `json:"task_id"`
	EmployeeID int `json:"employee_id"`
}

func (TaskCompletionPayload) EventType() EventType { return EventTaskCompletion }
func (TaskCompletionPayload) isEventPayload()      {}

// SalaryPaymentPayload fires on every payday
type SalaryPaymentPayload struct{}

func (SalaryPaymentPayload) EventType() EventType { return EventSalaryPayment }
func (SalaryPaymentPayload) isEventPayload()      {}

// MissionDeadlinePayload fires when a mission's max date is reached
type MissionDeadlinePayload struct {
	MissionID   int         `json:"mission_id"`
	MissionType MissionType `json:"mission_type"`
	Objective   string      `json:"objective"`
}

func (MissionDeadlinePayload) EventType() EventType { return EventMissionDeadline }
func (MissionDeadlinePayload) isEventPayload()      {}

// Event is a pending future occurrence
type Event struct {
	ID      int
	Date    calendar.Date
	Payload EventPayload
}

// Type returns the kind of the event
func (e Event) Type() EventType {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.EventType()
}

// SameAs compares type, date and payload, ignoring the sequence id
func (e Event) SameAs(other Event) bool {
	return e.Date == other.Date && e.Payload == other.Payload
}

type eventDocument struct {
	ID   int             `json:"id"`
	Type EventType       `json:"type"`
	Date calendar.Date   `json:"date"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the event as {id, type, date, data}
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Payload == nil {
		return nil, fmt.Errorf("event %d has no payload", e.ID)
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return json.Marshal(eventDocument{ID: e.ID, Type: e.Type(), Date: e.Date, Data: data})
}

// UnmarshalJSON decodes the event, rejecting unknown types
func (e *Event) UnmarshalJSON(raw []byte) error {
	var doc eventDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	var payload EventPayload
	switch doc.Type {
	case EventTaskCompletion:
		var p TaskCompletionPayload
		if err := unmarshalPayload(doc.Data, &p); err != nil {
			return err
		}
		payload = p
	case EventSalaryPayment:
		payload = SalaryPaymentPayload{}
	case EventMissionDeadline:
		var p MissionDeadlinePayload
		if err := unmarshalPayload(doc.Data, &p); err != nil {
			return err
		}
		payload = p
	default:
		return fmt.Errorf("unknown event type %q", doc.Type)
	}

	*e = Event{ID: doc.ID, Date: doc.Date, Payload: payload}
	return nil
}

func unmarshalPayload(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal event payload: %w", err)
	}
	return nil
}
