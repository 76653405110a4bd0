package api

import (
	"net/http"

	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/session"
)

// ResolveMissionRequest closes a mission
type ResolveMissionRequest struct {
	Success bool `json:"success"`
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	missions, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(_ *game.Engine, g *models.GameState) ([]models.Mission, error) {
			if activeOnly {
				return game.ActiveMissions(g), nil
			}
			return g.Missions, nil
		})
	if err != nil {
		respondFailure(w, r, err, "list missions")
		return
	}
	if missions == nil {
		missions = []models.Mission{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"missions": missions,
		"total":    len(missions),
	})
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	var req game.MissionInput
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "mission_created",
		func(e *game.Engine, g *models.GameState) (models.Mission, error) {
			return e.CreateMission(g, req)
		})
	if err != nil {
		respondFailure(w, r, err, "create mission")
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateMission(w http.ResponseWriter, r *http.Request) {
	mid, err := intParam(r, "mid")
	if err != nil {
		respondFailure(w, r, err, "update mission")
		return
	}
	var req game.MissionUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "mission_updated",
		func(e *game.Engine, g *models.GameState) (models.Mission, error) {
			return e.UpdateMission(g, mid, req)
		})
	if err != nil {
		respondFailure(w, r, err, "update mission")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMission(w http.ResponseWriter, r *http.Request) {
	mid, err := intParam(r, "mid")
	if err != nil {
		respondFailure(w, r, err, "delete mission")
		return
	}

	_, err = s.sessions.Update(r.Context(), GameIDFromContext(r.Context()), "mission_deleted",
		func(e *game.Engine, g *models.GameState) (any, error) {
			return nil, e.DeleteMission(g, mid)
		})
	if err != nil {
		respondFailure(w, r, err, "delete mission")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "mission deleted",
	})
}

func (s *Server) handleResolveMission(w http.ResponseWriter, r *http.Request) {
	mid, err := intParam(r, "mid")
	if err != nil {
		respondFailure(w, r, err, "resolve mission")
		return
	}
	var req ResolveMissionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "mission_resolved",
		func(e *game.Engine, g *models.GameState) (models.Mission, error) {
			return e.ResolveMission(g, mid, req.Success)
		})
	if err != nil {
		respondFailure(w, r, err, "resolve mission")
		return
	}
	respondJSON(w, http.StatusOK, m)
}
