package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/catalog"
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/events"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/tasks"
	"github.com/terra-clan/spacegom-engine/internal/trade"
)

type stubCatalog struct {
	planets   map[int]models.Planet
	positions map[string]models.Position
	crew      []models.CrewMember
}

func (c *stubCatalog) Planet(code int) (*models.Planet, bool) {
	p, ok := c.planets[code]
	return &p, ok
}

func (c *stubCatalog) Position(name string) (*models.Position, bool) {
	p, ok := c.positions[name]
	return &p, ok
}

func (c *stubCatalog) AvailablePositions(planet *models.Planet) []models.Position {
	var out []models.Position
	for _, p := range c.positions {
		if catalog.PositionAvailable(&p, planet) {
			out = append(out, p)
		}
	}
	return out
}

func (c *stubCatalog) Ship(name string) models.ShipModel {
	if name == "Space Glory" {
		return models.ShipModel{Name: name, Jump: 4, Passengers: 50, Storage: 300, Cost: 5000}
	}
	return models.ShipModel{Name: catalog.DefaultShip, Jump: 1, Passengers: 10, Storage: 40, Cost: 500}
}

func (c *stubCatalog) Crew() []models.CrewMember {
	return c.crew
}

type stubNames struct{}

func (stubNames) Personal() string { return "Ada Quill" }
func (stubNames) Company() string  { return "Helix Dynamics" }
func (stubNames) Ship() string     { return "Wayfarer" }

const (
	homeworld = 111
	backwater = 612
	farmworld = 121
)

func newCatalog() *stubCatalog {
	return &stubCatalog{
		planets: map[int]models.Planet{
			homeworld: {Code: homeworld, Name: "Aldebaran", TechLevel: "INT", AvgPassengers: 8, UCNPerOrder: 30, Products: []string{"INDU", "BASI"}},
			backwater: {Code: backwater, Name: "Tumbleweed", TechLevel: "PR", AvgPassengers: 2, UCNPerOrder: 10, Products: []string{"MADE"}},
			farmworld: {Code: farmworld, Name: "Meadowfar", TechLevel: "RUD", AvgPassengers: 4, UCNPerOrder: 20, Products: []string{"ALIM"}},
		},
		positions: map[string]models.Position{
			"Piloto":                         {Name: "Piloto", TechLevel: "ES", SearchTimeDice: "1d6", BaseSalary: 6, HireThreshold: 7},
			"Ingeniero":                      {Name: "Ingeniero", TechLevel: "INT", SearchTimeDice: "2d6", BaseSalary: 5, HireThreshold: 8},
			models.PositionFlightAttendant:   {Name: models.PositionFlightAttendant, SearchTimeDice: "3", BaseSalary: 2, HireThreshold: 6},
			models.PositionLogisticsOperator: {Name: models.PositionLogisticsOperator, TechLevel: "PR", SearchTimeDice: "1d6", BaseSalary: 2, HireThreshold: 6},
		},
		crew: []models.CrewMember{
			{Position: models.PositionDirector, Name: "Elena Vargas", Salary: 10, Experience: "Novice", Morale: "Medium"},
			{Position: "Piloto", Name: "Marcus Reyes", Salary: 6, Experience: "Expert", Morale: "Medium"},
		},
	}
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newEngine(t *testing.T, faces ...int) *Engine {
	t.Helper()
	return NewEngine(newCatalog(), stubNames{},
		WithClock(func() time.Time { return fixedNow }),
		WithRoller(dice.NewRoller(dice.NewSequence(faces...))),
	)
}

func newGame(t *testing.T, e *Engine) *models.GameState {
	t.Helper()
	g, err := e.NewGame(NewGameParams{Name: "test", PlanetCode: homeworld})
	require.NoError(t, err)
	return g
}

func TestNewGame(t *testing.T) {
	e := newEngine(t)

	g, err := e.NewGame(NewGameParams{Name: "Voyage", Difficulty: "hard", PlanetCode: homeworld})
	require.NoError(t, err)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, calendar.Start, g.Date)
	assert.Equal(t, 400, g.Treasury)
	assert.Equal(t, 0, g.Reputation)
	assert.Equal(t, 18, g.Fuel)
	assert.Equal(t, 30, g.FuelMax)
	assert.Equal(t, 16, g.Storage)
	assert.Equal(t, 40, g.StorageMax)
	assert.Equal(t, 10, g.PassengerCapacity)
	assert.Equal(t, "Helix Dynamics", g.CompanyName)
	assert.Equal(t, "Wayfarer", g.ShipName)
	assert.True(t, g.PassengerTransportAvailable)
	assert.Equal(t, fixedNow, g.CreatedAt)

	require.Len(t, g.Personnel, 2)
	assert.Equal(t, 1, g.Personnel[0].ID)
	assert.Equal(t, models.ExperienceNovice, g.Personnel[0].Experience)

	require.Len(t, g.Events, 1)
	assert.Equal(t, models.EventSalaryPayment, g.Events[0].Type())
	assert.Equal(t, calendar.MustParse("1-01-35"), g.Events[0].Date)
	assert.NotEmpty(t, g.Logs)
}

func TestNewGameDifficultiesAndErrors(t *testing.T) {
	e := newEngine(t)

	easy, err := e.NewGame(NewGameParams{Name: "a", Difficulty: "easy"})
	require.NoError(t, err)
	assert.Equal(t, 600, easy.Treasury)
	assert.Zero(t, easy.CurrentPlanetCode)
	assert.False(t, easy.PassengerTransportAvailable)

	normal, err := e.NewGame(NewGameParams{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 500, normal.Treasury)

	big, err := e.NewGame(NewGameParams{Name: "c", ShipModel: "Space Glory"})
	require.NoError(t, err)
	assert.Equal(t, 120, big.FuelMax)
	assert.Equal(t, 300, big.StorageMax)

	_, err = e.NewGame(NewGameParams{Name: "d", Difficulty: "nightmare"})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.NewGame(NewGameParams{Name: ""})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.NewGame(NewGameParams{Name: "e", PlanetCode: 345})
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestAdvanceWithNoEvents(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	g.Events = nil

	res, err := e.AdvanceTime(g, AdvanceOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoEvents, res.Outcome)
	assert.Equal(t, calendar.Start, g.Date)
}

func TestSalaryPayment(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	res, err := e.AdvanceTime(g, AdvanceOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeProcessed, res.Outcome)
	assert.Equal(t, calendar.MustParse("1-01-35"), res.NewDate)
	require.NotNil(t, res.Salary)
	assert.Equal(t, 16, res.Salary.Total)
	assert.Equal(t, 484, g.Treasury)
	assert.Equal(t, calendar.MustParse("1-02-35"), res.Salary.NextPayment)

	require.Len(t, g.Events, 1)
	assert.Equal(t, calendar.MustParse("1-02-35"), g.Events[0].Date)

	require.Len(t, g.Transactions, 1)
	assert.Equal(t, -16, g.Transactions[0].Amount)
	assert.Equal(t, models.CategorySalaries, g.Transactions[0].Category)

	// firing someone lowers the next payroll
	_, err = e.FireEmployee(g, 2)
	require.NoError(t, err)
	res, err = e.AdvanceTime(g, AdvanceOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Salary.Total)
	assert.Equal(t, 474, g.Treasury)
}

func TestSalaryCanOverdraw(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	g.Treasury = 5

	_, err := e.AdvanceTime(g, AdvanceOptions{})
	require.NoError(t, err)
	assert.Equal(t, -11, g.Treasury)
	assert.Equal(t, models.LogWarning, g.Logs[len(g.Logs)-1].Type)
}

func TestHireEndToEnd(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	task, err := e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Novice", ManualDays: []int{4}})
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, task.Status)
	assert.Equal(t, 1, task.QueuePosition)
	assert.Equal(t, 2, task.Params.SearchDays, "novice halves rounding up")
	assert.Equal(t, 3, task.Params.Salary)
	require.NotNil(t, task.CompletionDate)
	assert.Equal(t, calendar.MustParse("1-01-03"), *task.CompletionDate)
	require.Len(t, g.DiceRolls, 1)

	res, err := e.AdvanceTime(g, AdvanceOptions{HireDice: []int{6, 6}})
	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, res.Outcome)
	assert.Equal(t, calendar.MustParse("1-01-03"), g.Date)

	require.NotNil(t, res.Task)
	hire := res.Task.Hire
	require.NotNil(t, hire)
	assert.Equal(t, 12, hire.Roll)
	assert.Equal(t, -1, hire.Modifiers.Total)
	assert.Equal(t, 11, hire.Total)
	assert.True(t, hire.Success)
	require.NotNil(t, hire.EmployeeID)
	assert.Equal(t, models.TaskCompleted, res.Task.Status)

	hired, ok := g.Employee(*hire.EmployeeID)
	require.True(t, ok)
	assert.Equal(t, "Piloto", hired.Position)
	assert.Equal(t, "Ada Quill", hired.Name)
	assert.Equal(t, 3, hired.MonthlySalary)
	assert.Equal(t, models.ExperienceNovice, hired.Experience)
	assert.Equal(t, models.MoraleMedium, hired.Morale)
	assert.Equal(t, calendar.MustParse("1-01-03"), hired.HireDate)

	director, _ := g.Employee(1)
	assert.Equal(t, models.MoraleHigh, director.Morale, "11 raises morale")
	assert.Equal(t, models.ExperienceExpert, director.Experience, "double six raises experience")

	done, _ := g.Task(task.ID)
	assert.Equal(t, 0, done.QueuePosition)
	require.NotNil(t, done.FinishedDate)
	assert.Len(t, events.FilterByType(g.Events, models.EventTaskCompletion), 0)
}

func TestHireFailureStillEvolvesDirector(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	_, err := e.StartHireSearch(g, HireSearchRequest{Position: "Ingeniero", Experience: "Veteran", ManualDays: []int{1, 1}})
	require.NoError(t, err)

	res, err := e.AdvanceTime(g, AdvanceOptions{HireDice: []int{1, 2}})
	require.NoError(t, err)
	require.NotNil(t, res.Task.Hire)
	assert.False(t, res.Task.Hire.Success)
	assert.Equal(t, models.TaskFailed, res.Task.Status)
	assert.Nil(t, res.Task.Hire.EmployeeID)
	assert.Len(t, g.Personnel, 2)

	director, _ := g.Employee(1)
	assert.Equal(t, models.MoraleLow, director.Morale, "total 2 lowers morale")
}

func TestQueuedSearchesRunInOrder(t *testing.T) {
	e := newEngine(t, 2, 2)
	g := newGame(t, e)

	var ids []int
	for range 3 {
		task, err := e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Expert"})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	require.NoError(t, tasks.CheckQueue(g, 1))

	list, err := EmployeeTasks(g, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].QueuePosition, list[1].QueuePosition, list[2].QueuePosition})

	_, err = e.ReorderTask(g, ids[2], 1)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.ReorderTask(g, ids[0], 2)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)

	moved, err := e.ReorderTask(g, ids[2], 2)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.QueuePosition)

	_, err = e.DeleteTask(g, ids[0])
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = e.DeleteTask(g, ids[1])
	require.NoError(t, err)
	require.NoError(t, tasks.CheckQueue(g, 1))

	// completing the first search starts the remaining one on that date
	res, err := e.AdvanceTime(g, AdvanceOptions{HireDice: []int{3, 3}})
	require.NoError(t, err)
	require.NotNil(t, res.Task.NextTaskID)
	assert.Equal(t, ids[2], *res.Task.NextTaskID)

	next, _ := g.Task(ids[2])
	assert.Equal(t, models.TaskInProgress, next.Status)
	require.NotNil(t, next.StartedDate)
	assert.Equal(t, g.Date, *next.StartedDate)
	assert.True(t, events.IsSorted(g.Events))

	_, err = EmployeeTasks(g, 99)
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestStartHireSearchChecks(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	_, err := e.StartHireSearch(g, HireSearchRequest{Position: "Astrólogo", Experience: "Expert"})
	assert.ErrorIs(t, err, gameerr.ErrNotFound)

	_, err = e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Legendary"})
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	_, err = e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Expert", ManualDays: []int{7}})
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 2, Col: 3, PlanetCode: backwater}))
	_, err = e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Expert"})
	assert.ErrorIs(t, err, gameerr.ErrConstraint)

	assert.Len(t, e.AvailablePositions(g), 2)

	_, err = e.FireEmployee(g, 1)
	require.NoError(t, err)
	_, err = e.StartHireSearch(g, HireSearchRequest{Position: models.PositionFlightAttendant, Experience: "Expert"})
	assert.ErrorIs(t, err, gameerr.ErrNotFound, "no director")
	assert.Empty(t, g.Tasks)
}

func TestAdvanceRejectsBadDiceBeforeMoving(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	_, err := e.AdvanceTime(g, AdvanceOptions{HireDice: []int{7, 1}})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.AdvanceTime(g, AdvanceOptions{HireDice: []int{1}})
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	assert.Equal(t, calendar.Start, g.Date)
	assert.Len(t, g.Events, 1)
}

func TestOrphanTaskEventIsDiscarded(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	g.Events = events.Add(g.Events, g.NewEvent(calendar.MustParse("1-01-05"), models.TaskCompletionPayload{TaskID: 42, EmployeeID: 1}))

	res, err := e.AdvanceTime(g, AdvanceOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, res.Outcome)
	require.NotNil(t, res.Task)
	assert.NotEmpty(t, res.Task.Error)
	assert.Len(t, g.Events, 1)
}

func TestBatchBuyEndToEnd(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	g.Treasury = 100
	g.Storage = 0
	g.StorageMax = 50

	_, err := e.BuyBatch(g, []trade.Item{{ProductCode: "INDU", Quantity: 20, UnitPrice: 3}, {ProductCode: "BASI", Quantity: 10, UnitPrice: 5}})
	require.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Equal(t, 100, g.Treasury)
	assert.Equal(t, 0, g.Storage)
	assert.Empty(t, g.Orders)
	assert.Empty(t, g.DiceRolls)

	g.Treasury = 110
	res, err := e.BuyBatch(g, []trade.Item{{ProductCode: "INDU", Quantity: 20, UnitPrice: 3}, {ProductCode: "BASI", Quantity: 10, UnitPrice: 5}})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Treasury)
	assert.Equal(t, 30, g.Storage)
	assert.Equal(t, trade.BaseLoadingRate, res.LoadingRate)
	assert.Equal(t, 6, res.LoadingDays)
	assert.Len(t, g.Orders, 2)
}

func TestTradeRequiresPlanet(t *testing.T) {
	e := newEngine(t)
	g, err := e.NewGame(NewGameParams{Name: "adrift"})
	require.NoError(t, err)

	_, err = e.MarketData(g)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = e.Buy(g, trade.Item{ProductCode: "INDU", Quantity: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = e.Sell(g, 1, 10)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = e.TransportPassengers(g, nil)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
}

func TestBuyAndSellAcrossPlanets(t *testing.T) {
	// every operator roll is 4+4
	e := newEngine(t, 4)
	g := newGame(t, e)
	g.Storage = 0

	_, err := e.HireDirect(g, EmployeeInput{Position: models.PositionLogisticsOperator, Salary: 2})
	require.NoError(t, err)

	bought, err := e.Buy(g, trade.Item{ProductCode: "INDU", Quantity: 10, UnitPrice: 9})
	require.NoError(t, err)
	assert.Equal(t, trade.FastLoadingRate, bought.LoadingRate)
	assert.Equal(t, 1, bought.LoadingDays)
	require.Len(t, bought.OperatorRolls, 1)
	assert.Equal(t, 410, g.Treasury)

	market, err := e.MarketData(g)
	require.NoError(t, err)
	assert.Empty(t, market.Sell)

	_, err = e.Sell(g, bought.Orders[0].ID, 200)
	assert.ErrorIs(t, err, gameerr.ErrConstraint, "homeworld produces INDU")

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 1, Col: 2, PlanetCode: farmworld}))
	sold, err := e.Sell(g, bought.Orders[0].ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 110, sold.Profit)
	assert.Equal(t, 610, g.Treasury)
	assert.Equal(t, 0, g.Storage)
	assert.Empty(t, g.Cargo)
}

func TestPassengerTransportOncePerVisit(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	_, err := e.TransportPassengers(g, []int{4})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.True(t, g.PassengerTransportAvailable)

	res, err := e.TransportPassengers(g, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, "normal", res.Band)
	assert.Equal(t, 8, res.Passengers)
	assert.Equal(t, 8, res.Revenue)
	assert.Equal(t, 508, g.Treasury)
	assert.Equal(t, 8, g.Passengers)
	assert.False(t, g.PassengerTransportAvailable)

	_, err = e.TransportPassengers(g, []int{4, 4})
	assert.ErrorIs(t, err, gameerr.ErrConstraint)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 3, Col: 3, PlanetCode: homeworld}))
	assert.True(t, g.PassengerTransportAvailable)
	assert.Equal(t, 0, g.Passengers)

	res, err = e.TransportPassengers(g, []int{6, 5})
	require.NoError(t, err)
	assert.Equal(t, 16, res.Demand)
	assert.Equal(t, 10, res.Passengers, "capped at ship capacity")
	assert.True(t, res.Capped)
}

func TestPassengerTransportWithStaff(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	g.SetReputation(3)

	_, err := e.HireDirect(g, EmployeeInput{Position: models.PositionPassengerManager, Experience: "Veteran", Morale: "High", Salary: 3})
	require.NoError(t, err)
	for _, exp := range []string{"Veteran", "Novice"} {
		_, err := e.HireDirect(g, EmployeeInput{Position: models.PositionFlightAttendant, Experience: exp, Salary: 2})
		require.NoError(t, err)
	}

	// 3+3 + 1 + 1 + floor(3/2) = 9
	res, err := e.TransportPassengers(g, []int{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Total)
	assert.Equal(t, 8, res.Passengers)
	assert.Equal(t, 3, res.Multiplier)
	assert.Equal(t, 24, res.Revenue)
	require.NotNil(t, res.ManagerChange)
}

func TestMoveShipValidation(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	assert.ErrorIs(t, e.MoveShip(g, MoveRequest{Row: 0, Col: 1}), gameerr.ErrValidation)
	assert.ErrorIs(t, e.MoveShip(g, MoveRequest{Row: 1, Col: 7}), gameerr.ErrValidation)
	assert.ErrorIs(t, e.MoveShip(g, MoveRequest{Row: 1, Col: 1, PlanetCode: 345}), gameerr.ErrNotFound)
	assert.Equal(t, homeworld, g.CurrentPlanetCode)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 4, Col: 5}))
	assert.Zero(t, g.CurrentPlanetCode)
	assert.False(t, g.PassengerTransportAvailable)
	assert.Equal(t, []string{"0:4-5"}, g.ExploredQuadrants)
}

func TestMoveInPlaceKeepsVisit(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 3, Col: 3, PlanetCode: homeworld}))
	_, err := e.TransportPassengers(g, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 508, g.Treasury)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 3, Col: 3, PlanetCode: homeworld}))
	assert.False(t, g.PassengerTransportAvailable)
	assert.Equal(t, 8, g.Passengers, "nobody disembarks")

	_, err = e.TransportPassengers(g, []int{4, 4})
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Equal(t, 508, g.Treasury)

	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 3, Col: 4}))
	require.NoError(t, e.MoveShip(g, MoveRequest{Row: 3, Col: 3, PlanetCode: homeworld}))
	assert.True(t, g.PassengerTransportAvailable)
}

func TestNegotiate(t *testing.T) {
	e := newEngine(t, 6, 5, 3)
	g := newGame(t, e)
	g.SetReputation(-3)

	n, err := e.Negotiate(g, "sell", nil)
	require.NoError(t, err)
	assert.Equal(t, 11, n.Roll)
	assert.Equal(t, -2, n.Modifiers.Reputation)
	assert.Equal(t, 9, n.Total)
	assert.Equal(t, "1", n.Multiplier.String())
	assert.Equal(t, 3, n.DaysConsumed)
	assert.Equal(t, 500, g.Treasury)
	assert.Equal(t, calendar.Start, g.Date)
	require.Len(t, g.DiceRolls, 1)

	_, err = e.Negotiate(g, "steal", nil)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
}

func TestPersonnelLifecycle(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	emp, err := e.HireDirect(g, EmployeeInput{Position: "Cocinero", Salary: 1})
	require.NoError(t, err)
	assert.Equal(t, "Ada Quill", emp.Name)
	assert.Equal(t, models.ExperienceExpert, emp.Experience)
	assert.Equal(t, models.MoraleMedium, emp.Morale)

	_, err = e.HireDirect(g, EmployeeInput{Position: ""})
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	salary, morale := 4, "L"
	updated, err := e.UpdateEmployee(g, emp.ID, EmployeeUpdate{Salary: &salary, Morale: &morale})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MonthlySalary)
	assert.Equal(t, models.MoraleLow, updated.Morale)

	bad := "X"
	_, err = e.UpdateEmployee(g, emp.ID, EmployeeUpdate{Salary: &salary, Experience: &bad})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.UpdateEmployee(g, 99, EmployeeUpdate{})
	assert.ErrorIs(t, err, gameerr.ErrNotFound)

	summary := Personnel(g)
	assert.Equal(t, 3, summary.Active)
	assert.Equal(t, 20, summary.MonthlySalary)

	_, err = e.FireEmployee(g, emp.ID)
	require.NoError(t, err)
	_, err = e.FireEmployee(g, emp.ID)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Equal(t, 2, Personnel(g).Active)
}

func TestFiringDirectorDropsPendingSearches(t *testing.T) {
	e := newEngine(t, 3)
	g := newGame(t, e)

	for range 3 {
		_, err := e.StartHireSearch(g, HireSearchRequest{Position: "Piloto", Experience: "Expert"})
		require.NoError(t, err)
	}
	_, err := e.FireEmployee(g, 1)
	require.NoError(t, err)

	list, err := EmployeeTasks(g, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.TaskInProgress, list[0].Status)
}

func TestRollDiceAndLogs(t *testing.T) {
	e := newEngine(t, 2, 5)
	g := newGame(t, e)

	roll, err := e.RollDice(g, 2, 0, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, roll.Dice)
	require.Len(t, g.DiceRolls, 1)
	assert.Equal(t, "manual roll", g.DiceRolls[0].Purpose)

	_, err = e.RollDice(g, 0, 6, nil, "")
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	assert.Equal(t, 2, e.AdjustReputation(g, 2))
	assert.Equal(t, 5, e.AdjustReputation(g, 10))
	assert.Equal(t, -5, e.AdjustReputation(g, -20))

	logs := RecentLogs(g, 2)
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0].Message, "to -5")
	assert.Len(t, RecentLogs(g, 0), len(g.Logs))
}
