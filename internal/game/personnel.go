package game

import (
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/catalog"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/tasks"
)

// HireSearchRequest starts a recruitment search.
type HireSearchRequest struct {
	Position   string `json:"position"`
	Experience string `json:"experience"`
	// ManualDays overrides the dice of the search-time formula.
	ManualDays []int `json:"manual_days,omitempty"`
}

// AvailablePositions lists the jobs that can be recruited at the current
// planet. Away from a planet only jobs without a tech level are offered.
func (e *Engine) AvailablePositions(g *models.GameState) []models.Position {
	var planet *models.Planet
	if g.CurrentPlanetCode != 0 {
		planet, _ = e.catalog.Planet(g.CurrentPlanetCode)
	}
	return e.catalog.AvailablePositions(planet)
}

// StartHireSearch queues a search for a new employee on the director's
// task list. Search time and salary scale with the requested tier.
func (e *Engine) StartHireSearch(g *models.GameState, req HireSearchRequest) (models.Task, error) {
	job, ok := e.catalog.Position(req.Position)
	if !ok {
		return models.Task{}, gameerr.NotFound("position %q", req.Position)
	}
	tier, err := models.ParseExperience(req.Experience)
	if err != nil {
		return models.Task{}, err
	}

	var planet *models.Planet
	if g.CurrentPlanetCode != 0 {
		planet, _ = e.catalog.Planet(g.CurrentPlanetCode)
	}
	if !catalog.PositionAvailable(job, planet) {
		return models.Task{}, gameerr.Constraint("%s requires tech level %s, not available here", job.Name, job.TechLevel)
	}

	director, ok := g.FirstActive(models.PositionDirector)
	if !ok {
		return models.Task{}, gameerr.NotFound("active %s", models.PositionDirector)
	}

	days, roll, err := tasks.SearchDays(job.SearchTimeDice, tier, e.roller, req.ManualDays)
	if err != nil {
		return models.Task{}, err
	}
	if len(roll.Dice) > 0 {
		e.recordRoll(g, roll, "search time for "+job.Name)
	}

	task := tasks.Create(g, models.Task{
		EmployeeID: director.ID,
		Type:       models.TaskHire,
		Params: models.HireParams{
			Position:   job.Name,
			Experience: tier,
			SearchDice: job.SearchTimeDice,
			SearchDays: days,
			BaseSalary: job.BaseSalary,
			Salary:     tasks.Salary(job.BaseSalary, tier),
			Threshold:  job.HireThreshold,
		},
	}, g.Date)

	if task.Status == models.TaskInProgress {
		e.logf(g, models.LogInfo, "Started search for a %s %s (%d days, due %s)", tier, job.Name, days, task.CompletionDate)
	} else {
		e.logf(g, models.LogInfo, "Queued search for a %s %s at position %d (%d days)", tier, job.Name, task.QueuePosition, days)
	}
	return task, nil
}

// ReorderTask moves a pending task to another queue position.
func (e *Engine) ReorderTask(g *models.GameState, taskID, position int) (models.Task, error) {
	if err := tasks.Reorder(g, taskID, position); err != nil {
		return models.Task{}, err
	}
	t, _ := g.Task(taskID)
	e.logf(g, models.LogInfo, "Task %d moved to position %d", taskID, position)
	return *t, nil
}

// DeleteTask removes a pending task from its queue.
func (e *Engine) DeleteTask(g *models.GameState, taskID int) (models.Task, error) {
	t, err := tasks.Delete(g, taskID)
	if err != nil {
		return models.Task{}, err
	}
	e.logf(g, models.LogInfo, "Cancelled search for a %s", t.Params.Position)
	return t, nil
}

// EmployeeTasks returns an employee's queue followed by finished tasks.
func EmployeeTasks(g *models.GameState, employeeID int) ([]models.Task, error) {
	if _, ok := g.Employee(employeeID); !ok {
		return nil, gameerr.NotFound("employee %d", employeeID)
	}
	return tasks.ForEmployee(g, employeeID), nil
}

// EmployeeInput describes an employee added without a search.
type EmployeeInput struct {
	Position   string `json:"position"`
	Name       string `json:"name,omitempty"`
	Salary     int    `json:"monthly_salary"`
	Experience string `json:"experience,omitempty"`
	Morale     string `json:"morale,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// HireDirect adds an employee straight to the roster.
func (e *Engine) HireDirect(g *models.GameState, in EmployeeInput) (models.Employee, error) {
	position := strings.TrimSpace(in.Position)
	if position == "" {
		return models.Employee{}, gameerr.Validation("position is required")
	}
	if in.Salary < 0 {
		return models.Employee{}, gameerr.Validation("salary must be non-negative, got %d", in.Salary)
	}

	exp := models.ExperienceExpert
	if in.Experience != "" {
		parsed, err := models.ParseExperience(in.Experience)
		if err != nil {
			return models.Employee{}, err
		}
		exp = parsed
	}
	morale := models.MoraleMedium
	if in.Morale != "" {
		parsed, err := models.ParseMorale(in.Morale)
		if err != nil {
			return models.Employee{}, err
		}
		morale = parsed
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = e.names.Personal()
	}

	emp := models.Employee{
		ID:            g.NextEmployeeID(),
		Position:      position,
		Name:          name,
		MonthlySalary: in.Salary,
		Experience:    exp,
		Morale:        morale,
		HireDate:      g.Date,
		Active:        true,
		Notes:         in.Notes,
	}
	g.Personnel = append(g.Personnel, emp)
	e.logf(g, models.LogSuccess, "%s joined as %s", emp.Name, emp.Position)
	return emp, nil
}

// EmployeeUpdate changes the non-nil fields of an employee.
type EmployeeUpdate struct {
	Name       *string `json:"name,omitempty"`
	Salary     *int    `json:"monthly_salary,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Morale     *string `json:"morale,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpdateEmployee applies an update after validating every field.
func (e *Engine) UpdateEmployee(g *models.GameState, id int, u EmployeeUpdate) (models.Employee, error) {
	emp, ok := g.Employee(id)
	if !ok {
		return models.Employee{}, gameerr.NotFound("employee %d", id)
	}

	next := *emp
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return models.Employee{}, gameerr.Validation("name must not be empty")
		}
		next.Name = name
	}
	if u.Salary != nil {
		if *u.Salary < 0 {
			return models.Employee{}, gameerr.Validation("salary must be non-negative, got %d", *u.Salary)
		}
		next.MonthlySalary = *u.Salary
	}
	if u.Experience != nil {
		exp, err := models.ParseExperience(*u.Experience)
		if err != nil {
			return models.Employee{}, err
		}
		next.Experience = exp
	}
	if u.Morale != nil {
		morale, err := models.ParseMorale(*u.Morale)
		if err != nil {
			return models.Employee{}, err
		}
		next.Morale = morale
	}
	if u.Notes != nil {
		next.Notes = *u.Notes
	}

	*emp = next
	e.logf(g, models.LogInfo, "Updated employee %s", emp.Name)
	return next, nil
}

// FireEmployee marks an employee inactive and drops their pending tasks.
// A task already in progress still resolves on its date.
func (e *Engine) FireEmployee(g *models.GameState, id int) (models.Employee, error) {
	emp, ok := g.Employee(id)
	if !ok {
		return models.Employee{}, gameerr.NotFound("employee %d", id)
	}
	if !emp.Active {
		return models.Employee{}, gameerr.Constraint("%s is no longer employed", emp.Name)
	}
	emp.Active = false
	fired := *emp

	for _, t := range tasks.ForEmployee(g, id) {
		if t.Status == models.TaskPending {
			if _, err := tasks.Delete(g, t.ID); err != nil {
				return models.Employee{}, err
			}
		}
	}

	e.logf(g, models.LogWarning, "%s (%s) has been dismissed", fired.Name, fired.Position)
	return fired, nil
}

// PersonnelSummary is the roster with its monthly cost.
type PersonnelSummary struct {
	Employees     []models.Employee `json:"employees"`
	Active        int               `json:"active"`
	MonthlySalary int               `json:"monthly_salary"`
}

// Personnel summarises the roster.
func Personnel(g *models.GameState) PersonnelSummary {
	return PersonnelSummary{
		Employees:     append([]models.Employee{}, g.Personnel...),
		Active:        len(g.ActivePersonnel()),
		MonthlySalary: g.MonthlySalaries(),
	}
}

