package game

import (
	"fmt"
	"log/slog"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/events"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/resolution"
	"github.com/terra-clan/spacegom-engine/internal/tasks"
)

// Outcome classifies what an advance did.
type Outcome string

const (
	OutcomeNoEvents          Outcome = "no_events"
	OutcomeProcessed         Outcome = "event_processed"
	OutcomeRequiresUserInput Outcome = "requires_user_input"
)

// AdvanceOptions carries player-supplied dice for the next event.
type AdvanceOptions struct {
	// HireDice overrides the 2d6 of a hiring resolution.
	HireDice []int
}

// SalaryResult is the outcome of a payday.
type SalaryResult struct {
	Total       int           `json:"total"`
	Employees   int           `json:"employees"`
	Balance     int           `json:"balance"`
	NextPayment calendar.Date `json:"next_payment"`
}

// TaskResult is the outcome of a task completion event.
type TaskResult struct {
	TaskID      int                `json:"task_id"`
	Status      models.TaskStatus  `json:"status,omitempty"`
	Hire        *models.HireResult `json:"hire,omitempty"`
	NextTaskID  *int               `json:"next_task_id,omitempty"`
	Error       string             `json:"error,omitempty"`
	NewEmployee *models.Employee   `json:"new_employee,omitempty"`
}

// DeadlineResult is a mission deadline waiting for the player.
type DeadlineResult struct {
	MissionID   int                `json:"mission_id"`
	MissionType models.MissionType `json:"mission_type"`
	Objective   string             `json:"objective"`
}

// AdvanceResult reports one step of the clock.
type AdvanceResult struct {
	Outcome  Outcome         `json:"outcome"`
	OldDate  calendar.Date   `json:"old_date"`
	NewDate  calendar.Date   `json:"new_date"`
	Event    *models.Event   `json:"event,omitempty"`
	Message  string          `json:"message,omitempty"`
	Salary   *SalaryResult   `json:"salary,omitempty"`
	Task     *TaskResult     `json:"task,omitempty"`
	Deadline *DeadlineResult `json:"deadline,omitempty"`
}

// handled is what a handler tells the clock.
type handled struct {
	remove  bool
	outcome Outcome
}

// AdvanceTime jumps to the earliest scheduled event and resolves it. The
// date never moves backwards. A mission deadline stays queued until the
// mission is resolved, so the clock cannot pass it.
func (e *Engine) AdvanceTime(g *models.GameState, opts AdvanceOptions) (AdvanceResult, error) {
	res := AdvanceResult{OldDate: g.Date, NewDate: g.Date}

	ev, ok := events.Peek(g.Events)
	if !ok {
		res.Outcome = OutcomeNoEvents
		res.Message = "No events scheduled"
		return res, nil
	}
	if len(opts.HireDice) > 0 {
		if err := dice.Validate(opts.HireDice, 2, dice.DefaultSides); err != nil {
			return res, err
		}
	}

	if calendar.Before(g.Date, ev.Date) {
		g.Date = ev.Date
	}
	res.NewDate = g.Date
	res.Event = &ev

	var (
		h   handled
		err error
	)
	switch p := ev.Payload.(type) {
	case models.SalaryPaymentPayload:
		h, res.Salary = e.handleSalary(g, ev)
	case models.TaskCompletionPayload:
		h, res.Task, err = e.handleTaskCompletion(g, ev, p, opts)
	case models.MissionDeadlinePayload:
		h, res.Deadline = e.handleDeadline(g, p)
	default:
		err = fmt.Errorf("event %d has unhandled type %q", ev.ID, ev.Type())
	}
	if err != nil {
		return res, err
	}

	if h.remove {
		g.Events = events.Remove(g.Events, ev)
	}
	res.Outcome = h.outcome

	slog.Debug("event processed",
		"game_id", g.ID,
		"type", ev.Type(),
		"date", ev.Date.String(),
		"outcome", res.Outcome,
	)
	return res, nil
}

func (e *Engine) handleSalary(g *models.GameState, ev models.Event) (handled, *SalaryResult) {
	total := g.MonthlySalaries()
	g.Treasury -= total
	e.addTransaction(g, -total, models.CategorySalaries, fmt.Sprintf("Monthly salaries %s", ev.Date))

	next := calendar.NextDay35(ev.Date)
	g.Events = events.Add(g.Events, g.NewEvent(next, models.SalaryPaymentPayload{}))

	res := &SalaryResult{
		Total:       total,
		Employees:   len(g.ActivePersonnel()),
		Balance:     g.Treasury,
		NextPayment: next,
	}
	e.logf(g, models.LogInfo, "Paid %d credits in salaries to %d employees", total, res.Employees)
	if g.Treasury < 0 {
		e.logf(g, models.LogWarning, "Treasury is negative: %d credits", g.Treasury)
	}
	return handled{remove: true, outcome: OutcomeProcessed}, res
}

func (e *Engine) handleTaskCompletion(g *models.GameState, ev models.Event, p models.TaskCompletionPayload, opts AdvanceOptions) (handled, *TaskResult, error) {
	done := handled{remove: true, outcome: OutcomeProcessed}
	res := &TaskResult{TaskID: p.TaskID}

	task, ok := g.Task(p.TaskID)
	if !ok || task.Status != models.TaskInProgress {
		res.Error = "task not found or not in progress"
		e.logf(g, models.LogError, "Task %d could not be completed: %s", p.TaskID, res.Error)
		return done, res, nil
	}
	params := task.Params

	roll, err := e.roller.Resolve(opts.HireDice, 2, dice.DefaultSides)
	if err != nil {
		return handled{}, nil, err
	}
	e.recordRoll(g, roll, fmt.Sprintf("hiring %s", params.Position))

	actor, _ := g.Employee(task.EmployeeID)
	hire := resolution.ResolveHire(resolution.HireInput{
		Threshold:  params.Threshold,
		Reputation: g.Reputation,
		Actor:      actor,
		Roll:       roll,
	})
	if actor != nil {
		for _, msg := range hire.ActorChange.Messages {
			e.logf(g, models.LogInfo, "%s: %s", actor.Name, msg)
		}
	}

	status := models.TaskFailed
	if hire.Success {
		status = models.TaskCompleted
		emp := models.Employee{
			ID:            g.NextEmployeeID(),
			Position:      params.Position,
			Name:          e.names.Personal(),
			MonthlySalary: params.Salary,
			Experience:    params.Experience,
			Morale:        models.MoraleMedium,
			HireDate:      ev.Date,
			Active:        true,
			Notes:         "Hired through a recruitment search",
		}
		g.Personnel = append(g.Personnel, emp)
		hire.EmployeeID = &emp.ID
		hire.EmployeeName = emp.Name
		res.NewEmployee = &emp
		e.logf(g, models.LogSuccess, "Hired %s as %s for %d credits a month (%s: %d vs %d)",
			emp.Name, emp.Position, emp.MonthlySalary, dice.Format(roll.Dice), hire.Total, hire.Threshold)
	} else {
		e.logf(g, models.LogWarning, "Search for a %s %s failed (%s: %d vs %d)",
			params.Experience, params.Position, dice.Format(roll.Dice), hire.Total, hire.Threshold)
	}

	if _, err := tasks.Complete(g, p.TaskID, status, &hire, ev.Date); err != nil {
		return handled{}, nil, err
	}
	res.Status = status
	res.Hire = &hire

	for _, t := range tasks.ForEmployee(g, p.EmployeeID) {
		if t.Status == models.TaskInProgress {
			id := t.ID
			res.NextTaskID = &id
			e.logf(g, models.LogInfo, "Started search for a %s, due %s", t.Params.Position, t.CompletionDate)
			break
		}
	}
	return done, res, nil
}

func (e *Engine) handleDeadline(g *models.GameState, p models.MissionDeadlinePayload) (handled, *DeadlineResult) {
	m, ok := g.Mission(p.MissionID)
	if !ok || !m.IsActive() {
		e.logf(g, models.LogInfo, "Deadline of mission %d passed after it was closed", p.MissionID)
		return handled{remove: true, outcome: OutcomeProcessed}, nil
	}

	e.logf(g, models.LogWarning, "Deadline reached: %s", p.Objective)
	return handled{outcome: OutcomeRequiresUserInput}, &DeadlineResult{
		MissionID:   p.MissionID,
		MissionType: p.MissionType,
		Objective:   p.Objective,
	}
}

// UpcomingEvents returns the scheduled events in date order, optionally
// only those of one type.
func UpcomingEvents(g *models.GameState, eventType string) ([]models.Event, error) {
	if eventType == "" {
		return append([]models.Event(nil), g.Events...), nil
	}
	t, err := models.ParseEventType(eventType)
	if err != nil {
		return nil, err
	}
	return events.FilterByType(g.Events, t), nil
}
