package game

import (
	"fmt"
	"slices"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/resolution"
	"github.com/terra-clan/spacegom-engine/internal/trade"
)

// Grid size of an area map.
const AreaGridSize = 6

// MoveRequest moves the ship to a quadrant, optionally docking at a planet.
type MoveRequest struct {
	Row        int `json:"row"`
	Col        int `json:"col"`
	PlanetCode int `json:"planet_code,omitempty"`
	Area       int `json:"area,omitempty"`
}

// MoveShip relocates the ship. Passengers disembark, and docking at a
// planet makes a new passenger boarding available. Moving to the position
// the ship already holds changes nothing.
func (e *Engine) MoveShip(g *models.GameState, req MoveRequest) error {
	if req.Row < 1 || req.Row > AreaGridSize || req.Col < 1 || req.Col > AreaGridSize {
		return gameerr.Validation("quadrant %d,%d is outside the %dx%d grid", req.Row, req.Col, AreaGridSize, AreaGridSize)
	}
	if req.Area < 0 {
		return gameerr.Validation("area must be non-negative, got %d", req.Area)
	}
	var planet *models.Planet
	if req.PlanetCode != 0 {
		p, ok := e.catalog.Planet(req.PlanetCode)
		if !ok {
			return gameerr.NotFound("planet %d", req.PlanetCode)
		}
		planet = p
	}

	area := g.Area
	if req.Area != 0 {
		area = req.Area
	}
	if area == g.Area && req.Row == g.ShipRow && req.Col == g.ShipCol && req.PlanetCode == g.CurrentPlanetCode {
		e.logf(g, models.LogInfo, "Ship is already in quadrant %d-%d", req.Row, req.Col)
		return nil
	}

	g.Area = area
	g.ShipRow, g.ShipCol = req.Row, req.Col
	quadrant := fmt.Sprintf("%d:%d-%d", g.Area, req.Row, req.Col)
	if !slices.Contains(g.ExploredQuadrants, quadrant) {
		g.ExploredQuadrants = append(g.ExploredQuadrants, quadrant)
	}

	g.Passengers = 0
	if planet == nil {
		g.CurrentPlanetCode = 0
		g.PassengerTransportAvailable = false
		e.logf(g, models.LogInfo, "Ship moved to quadrant %d-%d", req.Row, req.Col)
		return nil
	}
	g.CurrentPlanetCode = planet.Code
	g.PassengerTransportAvailable = true
	e.logf(g, models.LogInfo, "Ship docked at %s (%d) in quadrant %d-%d", planet.Name, planet.Code, req.Row, req.Col)
	return nil
}

// TransportPassengers boards passengers at the current planet and collects
// their fares. It can be done once per visit.
func (e *Engine) TransportPassengers(g *models.GameState, manual []int) (resolution.PassengerResult, error) {
	planet, err := e.currentPlanet(g)
	if err != nil {
		return resolution.PassengerResult{}, err
	}
	if !g.PassengerTransportAvailable {
		return resolution.PassengerResult{}, gameerr.Constraint("passengers were already boarded at %s on this visit", planet.Name)
	}
	roll, err := e.roller.Resolve(manual, 2, dice.DefaultSides)
	if err != nil {
		return resolution.PassengerResult{}, err
	}

	manager, _ := g.FirstActive(models.PositionPassengerManager)
	var attendants []models.Employee
	for _, a := range g.ActiveByPosition(models.PositionFlightAttendant) {
		attendants = append(attendants, *a)
	}

	res := resolution.ResolvePassengers(resolution.PassengerInput{
		AvgPassengers: planet.AvgPassengers,
		Capacity:      g.PassengerCapacity,
		Reputation:    g.Reputation,
		Manager:       manager,
		Attendants:    attendants,
		Roll:          roll,
	})

	e.recordRoll(g, roll, "passenger transport")
	g.Passengers = res.Passengers
	g.Treasury += res.Revenue
	g.PassengerTransportAvailable = false
	if res.Revenue > 0 {
		e.addTransaction(g, res.Revenue, models.CategoryPassenger,
			fmt.Sprintf("%d passengers from %s", res.Passengers, planet.Name))
	}
	if manager != nil && res.ManagerChange != nil {
		for _, msg := range res.ManagerChange.Messages {
			e.logf(g, models.LogInfo, "%s: %s", manager.Name, msg)
		}
	}
	e.logf(g, models.LogSuccess, "%d passengers boarded at %s for %d credits (%s)",
		res.Passengers, planet.Name, res.Revenue, dice.Format(roll.Dice))
	return res, nil
}

// Negotiate rolls a price negotiation. It changes no money; the player
// applies the multiplier when buying or selling.
func (e *Engine) Negotiate(g *models.GameState, action string, manual []int) (resolution.Negotiation, error) {
	a, err := resolution.ParseAction(action)
	if err != nil {
		return resolution.Negotiation{}, err
	}
	n, err := resolution.Negotiate(e.roller, a, g.Reputation, manual)
	if err != nil {
		return resolution.Negotiation{}, err
	}
	e.recordRoll(g, dice.Roll{Dice: n.Dice, Total: n.Roll, Manual: n.Manual}, fmt.Sprintf("%s negotiation", a))
	e.logf(g, models.LogInfo, "Negotiated a %s: %s, total %d, price x%s, takes %d days",
		a, dice.Format(n.Dice), n.Total, n.Multiplier.String(), n.DaysConsumed)
	return n, nil
}

// MarketData lists what can be traded at the current planet.
func (e *Engine) MarketData(g *models.GameState) (trade.Market, error) {
	planet, err := e.currentPlanet(g)
	if err != nil {
		return trade.Market{}, err
	}
	return trade.MarketData(g, planet, g.Date), nil
}

// BatchBuyResult adds the loading rolls to a purchase.
type BatchBuyResult struct {
	trade.BuyResult
	OperatorRolls []trade.OperatorRoll `json:"operator_rolls,omitempty"`
}

// BuyBatch buys every item at the current planet or nothing at all.
func (e *Engine) BuyBatch(g *models.GameState, items []trade.Item) (BatchBuyResult, error) {
	planet, err := e.currentPlanet(g)
	if err != nil {
		return BatchBuyResult{}, err
	}

	var operators []models.Employee
	for _, op := range g.ActiveByPosition(models.PositionLogisticsOperator) {
		operators = append(operators, *op)
	}
	rate, rolls := trade.LoadingRate(e.roller, operators)

	res, err := trade.BatchBuy(g, planet, items, g.Date, rate)
	if err != nil {
		return BatchBuyResult{}, err
	}
	for _, r := range rolls {
		e.recordRoll(g, dice.Roll{Dice: r.Dice, Total: dice.Sum(r.Dice)}, "loading by "+r.Name)
	}
	for _, o := range res.Orders {
		e.logf(g, models.LogSuccess, "Bought %d UCN of %s at %s for %d credits", o.Quantity, o.ProductCode, planet.Name, o.BuyPriceTotal)
	}
	e.logf(g, models.LogInfo, "Loading %d UCN at %d UCN/day takes %d days", res.TotalUCN, res.LoadingRate, res.LoadingDays)
	return BatchBuyResult{BuyResult: res, OperatorRolls: rolls}, nil
}

// Buy purchases a single item at the current planet.
func (e *Engine) Buy(g *models.GameState, item trade.Item) (BatchBuyResult, error) {
	return e.BuyBatch(g, []trade.Item{item})
}

// Sell closes an in-transit order at the current planet for price credits.
func (e *Engine) Sell(g *models.GameState, orderID, price int) (trade.SellResult, error) {
	planet, err := e.currentPlanet(g)
	if err != nil {
		return trade.SellResult{}, err
	}
	res, err := trade.Sell(g, planet, orderID, price, g.Date)
	if err != nil {
		return trade.SellResult{}, err
	}

	typ := models.LogSuccess
	if res.Profit < 0 {
		typ = models.LogWarning
	}
	e.logf(g, typ, "Sold %d UCN of %s at %s for %d credits (profit %d)",
		res.Order.Quantity, res.Order.ProductCode, planet.Name, price, res.Profit)
	return res, nil
}
