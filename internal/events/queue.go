// Package events maintains the date-ordered queue of pending game events.
//
// Every function treats its input slice as immutable and returns a new
// slice, so a caller can discard a failed operation without rollback.
package events

import (
	"slices"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Add appends ev and stably re-sorts by date; ties keep insertion order.
func Add(queue []models.Event, ev models.Event) []models.Event {
	out := make([]models.Event, 0, len(queue)+1)
	out = append(out, queue...)
	out = append(out, ev)
	slices.SortStableFunc(out, func(a, b models.Event) int {
		return calendar.Compare(a.Date, b.Date)
	})
	return out
}

// Peek returns the earliest event.
func Peek(queue []models.Event) (models.Event, bool) {
	if len(queue) == 0 {
		return models.Event{}, false
	}
	return queue[0], true
}

// Remove drops the first event equal to ev by type, date and payload. The
// queue is returned unchanged when nothing matches.
func Remove(queue []models.Event, ev models.Event) []models.Event {
	for i := range queue {
		if queue[i].SameAs(ev) {
			out := make([]models.Event, 0, len(queue)-1)
			out = append(out, queue[:i]...)
			return append(out, queue[i+1:]...)
		}
	}
	return queue
}

// RemoveWhere drops every event matching pred.
func RemoveWhere(queue []models.Event, pred func(models.Event) bool) []models.Event {
	out := make([]models.Event, 0, len(queue))
	for _, ev := range queue {
		if !pred(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByType returns the events of one kind, in queue order.
func FilterByType(queue []models.Event, t models.EventType) []models.Event {
	var out []models.Event
	for _, ev := range queue {
		if ev.Type() == t {
			out = append(out, ev)
		}
	}
	return out
}

// IsSorted reports whether the queue is in ascending date order.
func IsSorted(queue []models.Event) bool {
	return slices.IsSortedFunc(queue, func(a, b models.Event) int {
		return calendar.Compare(a.Date, b.Date)
	})
}
