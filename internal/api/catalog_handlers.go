package api

import (
	"net/http"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/trade"
)

// Catalog handlers: read-only reference data plus custom planets

func (s *Server) handleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets := s.catalog.ListPlanets()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"planets": planets,
		"total":   len(planets),
	})
}

func (s *Server) handleGetPlanet(w http.ResponseWriter, r *http.Request) {
	code, err := intParam(r, "code")
	if err != nil {
		respondFailure(w, r, err, "get planet")
		return
	}
	planet, ok := s.catalog.Planet(code)
	if !ok {
		respondFailure(w, r, gameerr.NotFound("planet %d", code), "get planet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"planet":              planet,
		"available_positions": s.catalog.AvailablePositions(planet),
	})
}

func (s *Server) handleAddPlanet(w http.ResponseWriter, r *http.Request) {
	var planet models.Planet
	if !decodeBody(w, r, &planet) {
		return
	}
	if err := s.catalog.AddPlanet(planet); err != nil {
		respondFailure(w, r, err, "add planet")
		return
	}
	stored, _ := s.catalog.Planet(planet.Code)
	respondJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions := s.catalog.ListPositions()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"total":     len(positions),
	})
}

func (s *Server) handleListShips(w http.ResponseWriter, r *http.Request) {
	ships := s.catalog.ListShips()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ships": ships,
		"total": len(ships),
	})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := trade.Products()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}
