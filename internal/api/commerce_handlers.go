package api

import (
	"net/http"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/resolution"
	"github.com/terra-clan/spacegom-engine/internal/session"
	"github.com/terra-clan/spacegom-engine/internal/trade"
)

// DiceRequest carries an optional 2d6 override
type DiceRequest struct {
	Dice string `json:"dice,omitempty"`
}

// NegotiateRequest rolls a buy or sell negotiation
type NegotiateRequest struct {
	Action string `json:"action"`
	Dice   string `json:"dice,omitempty"`
}

// BuyBatchRequest buys several products at once
type BuyBatchRequest struct {
	Items []trade.Item `json:"items"`
}

// SellRequest closes an in-transit order
type SellRequest struct {
	OrderID int `json:"order_id"`
	Price   int `json:"sell_price"`
}

func (s *Server) handleTransportPassengers(w http.ResponseWriter, r *http.Request) {
	var req DiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	manual, err := dice.ParseManual(req.Dice, 2, dice.DefaultSides)
	if err != nil {
		respondFailure(w, r, err, "transport passengers")
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "passengers",
		func(e *game.Engine, g *models.GameState) (resolution.PassengerResult, error) {
			return e.TransportPassengers(g, manual)
		})
	if err != nil {
		respondFailure(w, r, err, "transport passengers")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleMoveShip(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "ship_moved",
		func(e *game.Engine, g *models.GameState) (models.GameSummary, error) {
			if err := e.MoveShip(g, req); err != nil {
				return models.GameSummary{}, err
			}
			return g.Summary(), nil
		})
	if err != nil {
		respondFailure(w, r, err, "move ship")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game":        g,
		"row":         req.Row,
		"col":         req.Col,
		"planet_code": req.PlanetCode,
	})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	market, err := session.View(r.Context(), s.sessions, GameIDFromContext(r.Context()),
		func(e *game.Engine, g *models.GameState) (trade.Market, error) {
			return e.MarketData(g)
		})
	if err != nil {
		respondFailure(w, r, err, "get market")
		return
	}
	respondJSON(w, http.StatusOK, market)
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req NegotiateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	manual, err := dice.ParseManual(req.Dice, 2, dice.DefaultSides)
	if err != nil {
		respondFailure(w, r, err, "negotiate")
		return
	}

	n, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "negotiation",
		func(e *game.Engine, g *models.GameState) (resolution.Negotiation, error) {
			return e.Negotiate(g, req.Action, manual)
		})
	if err != nil {
		respondFailure(w, r, err, "negotiate")
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req trade.Item
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "purchase",
		func(e *game.Engine, g *models.GameState) (game.BatchBuyResult, error) {
			return e.Buy(g, req)
		})
	if err != nil {
		respondFailure(w, r, err, "buy")
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleBuyBatch(w http.ResponseWriter, r *http.Request) {
	var req BuyBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "purchase",
		func(e *game.Engine, g *models.GameState) (game.BatchBuyResult, error) {
			return e.BuyBatch(g, req.Items)
		})
	if err != nil {
		respondFailure(w, r, err, "buy batch")
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := session.Apply(r.Context(), s.sessions, GameIDFromContext(r.Context()), "sale",
		func(e *game.Engine, g *models.GameState) (trade.SellResult, error) {
			return e.Sell(g, req.OrderID, req.Price)
		})
	if err != nil {
		respondFailure(w, r, err, "sell")
		return
	}
	respondJSON(w, http.StatusOK, res)
}
