package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/session"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// statusFor maps the engine error taxonomy onto HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, gameerr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, gameerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gameerr.ErrConstraint):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondFailure reports err; internal errors are logged and not echoed
func respondFailure(w http.ResponseWriter, r *http.Request, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to "+action,
			"error", err,
			"game_id", GameIDFromContext(r.Context()),
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondError(w, status, gameerr.Kind(err), "failed to "+action)
		return
	}
	respondError(w, status, gameerr.Kind(err), err.Error())
}

// decodeBody decodes an optional JSON body into dst. An empty body leaves
// dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, gameerr.Validation("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return def
}

// parseFaces reads a comma-separated list of dice faces whose count is
// checked later, by the operation that consumes them.
func parseFaces(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	parts := strings.Split(input, ",")
	faces := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, gameerr.Validation("dice value %q is not an integer", strings.TrimSpace(p))
		}
		faces = append(faces, v)
	}
	return faces, nil
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Ping(r.Context()); err != nil {
		slog.Warn("game store not ready", "error", err)
		respondError(w, http.StatusServiceUnavailable, "not_ready", "game store not ready")
		return
	}

	status, ok := s.registry.StatusAll(r.Context())
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(apiResponse{
			Success: false,
			Data:    map[string]interface{}{"status": "degraded", "services": status},
			Error:   &apiError{Code: "not_ready", Message: "a backing service is unhealthy"},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"services": status,
	})
}

// Game handlers

// AdvanceRequest carries optional hiring dice for the next event
type AdvanceRequest struct {
	HireDice string `json:"hire_dice,omitempty"`
}

// RollDiceRequest is a free-form dice roll
type RollDiceRequest struct {
	NumDice int    `json:"num_dice"`
	Sides   int    `json:"sides,omitempty"`
	Dice    string `json:"dice,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// ReputationRequest adjusts the reputation by Delta
type ReputationRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req game.NewGameParams
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := s.sessions.Create(r.Context(), req)
	if err != nil {
		respondFailure(w, r, err, "create game")
		return
	}

	respondJSON(w, http.StatusCreated, g)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	filters := models.ListFilters{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	games, err := s.sessions.List(r.Context(), filters)
	if err != nil {
		respondFailure(w, r, err, "list games")
		return
	}
	if games == nil {
		games = []models.GameSummary{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"total": len(games),
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.sessions.Get(r.Context(), GameIDFromContext(r.Context()))
	if err != nil {
		respondFailure(w, r, err, "get game")
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), GameIDFromContext(r.Context())); err != nil {
		respondFailure(w, r, err, "delete game")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "game deleted",
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hireDice, err := dice.ParseManual(req.HireDice, 2, dice.DefaultSides)
	if err != nil {
		respondFailure(w, r, err, "advance time")
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "advance",
		func(e *game.Engine, g *models.GameState) (game.AdvanceResult, error) {
			return e.AdvanceTime(g, game.AdvanceOptions{HireDice: hireDice})
		})
	if err != nil {
		respondFailure(w, r, err, "advance time")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	logs, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(_ *game.Engine, g *models.GameState) ([]models.LogEntry, error) {
			return game.RecentLogs(g, limit), nil
		})
	if err != nil {
		respondFailure(w, r, err, "get logs")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": len(logs),
	})
}

func (s *Server) handleRollDice(w http.ResponseWriter, r *http.Request) {
	req := RollDiceRequest{NumDice: 1}
	if !decodeBody(w, r, &req) {
		return
	}
	manual, err := parseFaces(req.Dice)
	if err != nil {
		respondFailure(w, r, err, "roll dice")
		return
	}

	roll, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "dice_roll",
		func(e *game.Engine, g *models.GameState) (dice.Roll, error) {
			return e.RollDice(g, req.NumDice, req.Sides, manual, req.Purpose)
		})
	if err != nil {
		respondFailure(w, r, err, "roll dice")
		return
	}
	respondJSON(w, http.StatusOK, roll)
}

func (s *Server) handleAdjustReputation(w http.ResponseWriter, r *http.Request) {
	var req ReputationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rep, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "reputation",
		func(e *game.Engine, g *models.GameState) (int, error) {
			return e.AdjustReputation(g, req.Delta), nil
		})
	if err != nil {
		respondFailure(w, r, err, "adjust reputation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"reputation": rep})
}
