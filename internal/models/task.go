package models

import "github.com/terra-clan/spacegom-engine/internal/calendar"

// TaskStatus represents the lifecycle state of a long-running task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// IsTerminal returns true if the task has been resolved
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// TaskType identifies what a task does when it completes
type TaskType string

const TaskHire TaskType = "hire"

// HireParams are the values fixed when a hiring search is queued
type HireParams struct {
	Position   string     `json:"position"`
	Experience Experience `json:"experience_level"`
	SearchDice string     `json:"search_time_dice"`
	SearchDays int        `json:"search_days"`
	BaseSalary int        `json:"base_salary"`
	Salary     int        `json:"final_salary"`
	Threshold  int        `json:"hire_threshold"`
}

// Modifiers is the breakdown of a resolution roll's bonus
type Modifiers struct {
	Experience int `json:"experience"`
	Morale     int `json:"morale"`
	Reputation int `json:"reputation"`
	Total      int `json:"total"`
}

// HireResult is the audit of a resolved hiring search
type HireResult struct {
	Dice         []int      `json:"dice"`
	Roll         int        `json:"dice_sum"`
	Manual       bool       `json:"is_manual"`
	Modifiers    Modifiers  `json:"modifiers"`
	Total        int        `json:"final_result"`
	Threshold    int        `json:"threshold"`
	Success      bool       `json:"success"`
	EmployeeID   *int       `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	ActorChange  StatChange `json:"actor_change"`
}

// Task is a queued job owned by an employee
type Task struct {
	ID             int            `json:"id"`
	EmployeeID     int            `json:"employee_id"`
	Type           TaskType       `json:"task_type"`
	Status         TaskStatus     `json:"status"`
	QueuePosition  int            `json:"queue_position"`
	Params         HireParams     `json:"task_data"`
	CreatedDate    calendar.Date  `json:"created_date"`
	StartedDate    *calendar.Date `json:"started_date,omitempty"`
	CompletionDate *calendar.Date `json:"completion_date,omitempty"`
	FinishedDate   *calendar.Date `json:"finished_date,omitempty"`
	Result         *HireResult    `json:"result,omitempty"`
}

// IsQueued reports whether the task still occupies a queue slot
func (t *Task) IsQueued() bool {
	return t.Status == TaskPending || t.Status == TaskInProgress
}
