package api

import (
	"net/http"

	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/session"
)

// HireSearchRequest starts a recruitment search. ManualDays overrides the
// search-time dice as comma-separated faces.
type HireSearchRequest struct {
	Position   string `json:"position"`
	Experience string `json:"experience"`
	ManualDays string `json:"manual_days,omitempty"`
}

// ReorderRequest moves a pending task within its queue
type ReorderRequest struct {
	Position int `json:"new_position"`
}

func (s *Server) handleHirePositions(w http.ResponseWriter, r *http.Request) {
	positions, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(e *game.Engine, g *models.GameState) ([]models.Position, error) {
			return e.AvailablePositions(g), nil
		})
	if err != nil {
		respondFailure(w, r, err, "list positions")
		return
	}
	if positions == nil {
		positions = []models.Position{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"total":     len(positions),
	})
}

func (s *Server) handleStartHireSearch(w http.ResponseWriter, r *http.Request) {
	var req HireSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	days, err := parseFaces(req.ManualDays)
	if err != nil {
		respondFailure(w, r, err, "start hire search")
		return
	}

	task, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "hire_search",
		func(e *game.Engine, g *models.GameState) (models.Task, error) {
			return e.StartHireSearch(g, game.HireSearchRequest{
				Position:   req.Position,
				Experience: req.Experience,
				ManualDays: days,
			})
		})
	if err != nil {
		respondFailure(w, r, err, "start hire search")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleEmployeeTasks(w http.ResponseWriter, r *http.Request) {
	eid, err := intParam(r, "eid")
	if err != nil {
		respondFailure(w, r, err, "list tasks")
		return
	}

	list, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(_ *game.Engine, g *models.GameState) ([]models.Task, error) {
			return game.EmployeeTasks(g, eid)
		})
	if err != nil {
		respondFailure(w, r, err, "list tasks")
		return
	}
	if list == nil {
		list = []models.Task{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": list,
		"total": len(list),
	})
}

func (s *Server) handleReorderTask(w http.ResponseWriter, r *http.Request) {
	tid, err := intParam(r, "tid")
	if err != nil {
		respondFailure(w, r, err, "reorder task")
		return
	}
	var req ReorderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "task_reordered",
		func(e *game.Engine, g *models.GameState) (models.Task, error) {
			return e.ReorderTask(g, tid, req.Position)
		})
	if err != nil {
		respondFailure(w, r, err, "reorder task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	tid, err := intParam(r, "tid")
	if err != nil {
		respondFailure(w, r, err, "delete task")
		return
	}

	task, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "task_deleted",
		func(e *game.Engine, g *models.GameState) (models.Task, error) {
			return e.DeleteTask(g, tid)
		})
	if err != nil {
		respondFailure(w, r, err, "delete task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleListPersonnel(w http.ResponseWriter, r *http.Request) {
	summary, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(_ *game.Engine, g *models.GameState) (game.PersonnelSummary, error) {
			return game.Personnel(g), nil
		})
	if err != nil {
		respondFailure(w, r, err, "list personnel")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHireDirect(w http.ResponseWriter, r *http.Request) {
	var req game.EmployeeInput
	if !decodeBody(w, r, &req) {
		return
	}

	emp, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "employee_hired",
		func(e *game.Engine, g *models.GameState) (models.Employee, error) {
			return e.HireDirect(g, req)
		})
	if err != nil {
		respondFailure(w, r, err, "add employee")
		return
	}
	respondJSON(w, http.StatusCreated, emp)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	eid, err := intParam(r, "eid")
	if err != nil {
		respondFailure(w, r, err, "update employee")
		return
	}
	var req game.EmployeeUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	emp, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "employee_updated",
		func(e *game.Engine, g *models.GameState) (models.Employee, error) {
			return e.UpdateEmployee(g, eid, req)
		})
	if err != nil {
		respondFailure(w, r, err, "update employee")
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

func (s *Server) handleFireEmployee(w http.ResponseWriter, r *http.Request) {
	eid, err := intParam(r, "eid")
	if err != nil {
		respondFailure(w, r, err, "dismiss employee")
		return
	}

	emp, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "employee_fired",
		func(e *game.Engine, g *models.GameState) (models.Employee, error) {
			return e.FireEmployee(g, eid)
		})
	if err != nil {
		respondFailure(w, r, err, "dismiss employee")
		return
	}
	respondJSON(w, http.StatusOK, emp)
}
