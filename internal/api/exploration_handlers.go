package api

import (
	"net/http"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/session"
)

func (s *Server) handleRollPlanetCode(w http.ResponseWriter, r *http.Request) {
	var req DiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	manual, err := dice.ParseManual(req.Dice, 3, dice.DefaultSides)
	if err != nil {
		respondFailure(w, r, err, "roll planet code")
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "planet_code",
		func(e *game.Engine, g *models.GameState) (game.PlanetCodeRoll, error) {
			return e.RollPlanetCode(g, manual)
		})
	if err != nil {
		respondFailure(w, r, err, "roll planet code")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleExploreArea(w http.ResponseWriter, r *http.Request) {
	var req DiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	manual, err := dice.ParseManual(req.Dice, 2, dice.DefaultSides)
	if err != nil {
		respondFailure(w, r, err, "explore area")
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "area_explored",
		func(e *game.Engine, g *models.GameState) (game.AreaDensity, error) {
			return e.ExploreArea(g, manual)
		})
	if err != nil {
		respondFailure(w, r, err, "explore area")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("type")

	list, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(_ *game.Engine, g *models.GameState) ([]models.Event, error) {
			return game.UpcomingEvents(g, eventType)
		})
	if err != nil {
		respondFailure(w, r, err, "list events")
		return
	}
	if list == nil {
		list = []models.Event{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": list,
		"total":  len(list),
	})
}

func (s *Server) handleNextPlanet(w http.ResponseWriter, r *http.Request) {
	code, err := intParam(r, "code")
	if err != nil {
		respondFailure(w, r, err, "find next planet")
		return
	}
	next, err := s.sessions.Engine().NextPlanet(code)
	if err != nil {
		respondFailure(w, r, err, "find next planet")
		return
	}
	respondJSON(w, http.StatusOK, next)
}
