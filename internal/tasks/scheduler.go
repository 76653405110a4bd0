// Package tasks implements the per-employee FIFO queue of long-running jobs.
//
// Queue positions are 1-based and dense among an employee's pending and
// in-progress tasks. Position 1 is the task being worked on; everything
// behind it waits.
package tasks

import (
	"fmt"
	"slices"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/events"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Create queues a new task behind the owner's existing work. A task that
// lands on position 1 starts immediately.
func Create(g *models.GameState, t models.Task, now calendar.Date) models.Task {
	t.ID = g.NextTaskID()
	t.Status = models.TaskPending
	t.CreatedDate = now
	t.QueuePosition = queuedCount(g, t.EmployeeID) + 1
	t.StartedDate, t.CompletionDate, t.FinishedDate, t.Result = nil, nil, nil, nil
	if t.Type == "" {
		t.Type = models.TaskHire
	}

	g.Tasks = append(g.Tasks, t)
	created := &g.Tasks[len(g.Tasks)-1]
	if created.QueuePosition == 1 {
		activate(g, created, now)
	}
	return *created
}

// Reorder moves a pending task to position target. Position 1 belongs to
// the in-progress task and cannot be taken this way.
func Reorder(g *models.GameState, taskID, target int) error {
	task, ok := g.Task(taskID)
	if !ok {
		return gameerr.NotFound("task %d", taskID)
	}
	if task.Status != models.TaskPending {
		return gameerr.Constraint("only pending tasks can be reordered, task %d is %s", taskID, task.Status)
	}

	pending := countStatus(g, task.EmployeeID, models.TaskPending)
	if target < 2 || target > pending+1 {
		return gameerr.Validation("target position must be between 2 and %d, got %d", pending+1, target)
	}

	old := task.QueuePosition
	if old == target {
		return nil
	}

	for i := range g.Tasks {
		other := &g.Tasks[i]
		if other.ID == taskID || other.EmployeeID != task.EmployeeID || other.Status != models.TaskPending {
			continue
		}
		switch {
		case old < target && other.QueuePosition > old && other.QueuePosition <= target:
			other.QueuePosition--
		case old > target && other.QueuePosition >= target && other.QueuePosition < old:
			other.QueuePosition++
		}
	}
	task.QueuePosition = target
	return nil
}

// Delete removes a pending task and closes the gap it leaves.
func Delete(g *models.GameState, taskID int) (models.Task, error) {
	idx := slices.IndexFunc(g.Tasks, func(t models.Task) bool { return t.ID == taskID })
	if idx < 0 {
		return models.Task{}, gameerr.NotFound("task %d", taskID)
	}
	task := g.Tasks[idx]
	if task.Status != models.TaskPending {
		return models.Task{}, gameerr.Constraint("only pending tasks can be deleted, task %d is %s", taskID, task.Status)
	}

	g.Tasks = slices.Delete(g.Tasks, idx, idx+1)
	Compact(g, task.EmployeeID)
	return task, nil
}

// Complete closes the in-progress task with a terminal status, shifts the
// owner's queue forward and starts the next task using now as its start.
func Complete(g *models.GameState, taskID int, status models.TaskStatus, result *models.HireResult, now calendar.Date) (*models.Task, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("complete task %d: status %s is not terminal", taskID, status)
	}
	task, ok := g.Task(taskID)
	if !ok {
		return nil, gameerr.NotFound("task %d", taskID)
	}
	if task.Status != models.TaskInProgress {
		return nil, gameerr.Constraint("task %d is %s, not in_progress", taskID, task.Status)
	}

	finished := now
	task.Status = status
	task.FinishedDate = &finished
	task.Result = result
	task.QueuePosition = 0
	employeeID := task.EmployeeID

	Compact(g, employeeID)
	if next := atPosition(g, employeeID, 1); next != nil && next.Status == models.TaskPending {
		activate(g, next, now)
	}

	done, _ := g.Task(taskID)
	return done, nil
}

// Compact renumbers an employee's queued tasks to 1..n, keeping relative
// order and pinning the in-progress task at 1.
func Compact(g *models.GameState, employeeID int) {
	var queued []*models.Task
	for i := range g.Tasks {
		t := &g.Tasks[i]
		if t.EmployeeID == employeeID && t.IsQueued() {
			queued = append(queued, t)
		}
	}

	slices.SortStableFunc(queued, func(a, b *models.Task) int {
		aActive, bActive := a.Status == models.TaskInProgress, b.Status == models.TaskInProgress
		switch {
		case aActive && !bActive:
			return -1
		case bActive && !aActive:
			return 1
		case a.QueuePosition != b.QueuePosition:
			return a.QueuePosition - b.QueuePosition
		default:
			return a.ID - b.ID
		}
	})

	for i, t := range queued {
		t.QueuePosition = i + 1
	}
}

// ForEmployee returns the employee's queued tasks by position followed by
// finished tasks by id.
func ForEmployee(g *models.GameState, employeeID int) []models.Task {
	var queued, done []models.Task
	for _, t := range g.Tasks {
		if t.EmployeeID != employeeID {
			continue
		}
		if t.IsQueued() {
			queued = append(queued, t)
		} else {
			done = append(done, t)
		}
	}
	slices.SortFunc(queued, func(a, b models.Task) int { return a.QueuePosition - b.QueuePosition })
	slices.SortFunc(done, func(a, b models.Task) int { return a.ID - b.ID })
	return append(queued, done...)
}

// CheckQueue verifies that an employee's queue is dense, unique and has at
// most one in-progress task, at position 1.
func CheckQueue(g *models.GameState, employeeID int) error {
	seen := make(map[int]bool)
	inProgress := 0
	for _, t := range g.Tasks {
		if t.EmployeeID != employeeID || !t.IsQueued() {
			continue
		}
		if seen[t.QueuePosition] {
			return fmt.Errorf("employee %d: duplicate queue position %d", employeeID, t.QueuePosition)
		}
		seen[t.QueuePosition] = true
		if t.Status == models.TaskInProgress {
			inProgress++
			if t.QueuePosition != 1 {
				return fmt.Errorf("employee %d: in-progress task %d at position %d", employeeID, t.ID, t.QueuePosition)
			}
		}
	}
	for pos := 1; pos <= len(seen); pos++ {
		if !seen[pos] {
			return fmt.Errorf("employee %d: gap at queue position %d", employeeID, pos)
		}
	}
	if inProgress > 1 {
		return fmt.Errorf("employee %d: %d tasks in progress", employeeID, inProgress)
	}
	return nil
}

func activate(g *models.GameState, t *models.Task, now calendar.Date) {
	started := now
	completion := calendar.AddDays(now, t.Params.SearchDays)
	t.Status = models.TaskInProgress
	t.StartedDate = &started
	t.CompletionDate = &completion

	ev := g.NewEvent(completion, models.TaskCompletionPayload{TaskID: t.ID, EmployeeID: t.EmployeeID})
	g.Events = events.Add(g.Events, ev)
}

func queuedCount(g *models.GameState, employeeID int) int {
	n := 0
	for _, t := range g.Tasks {
		if t.EmployeeID == employeeID && t.IsQueued() {
			n++
		}
	}
	return n
}

func countStatus(g *models.GameState, employeeID int, status models.TaskStatus) int {
	n := 0
	for _, t := range g.Tasks {
		if t.EmployeeID == employeeID && t.Status == status {
			n++
		}
	}
	return n
}

func atPosition(g *models.GameState, employeeID, pos int) *models.Task {
	for i := range g.Tasks {
		t := &g.Tasks[i]
		if t.EmployeeID == employeeID && t.IsQueued() && t.QueuePosition == pos {
			return t
		}
	}
	return nil
}
