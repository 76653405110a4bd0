package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

var (
	factory = &models.Planet{Code: 466, Name: "Forge", UCNPerOrder: 30, Products: []string{"INDU", "BASI"}}
	farm    = &models.Planet{Code: 121, Name: "Meadow", UCNPerOrder: 20, Products: []string{"ALIM"}}
	day1    = calendar.MustParse("1-01-01")
)

func newGame(treasury, storage, storageMax int) *models.GameState {
	return &models.GameState{Date: day1, Treasury: treasury, Storage: storage, StorageMax: storageMax, Cargo: map[string]int{}}
}

func TestBatchBuyRejectsOverBudgetWithoutSideEffects(t *testing.T) {
	g := newGame(100, 0, 50)
	items := []Item{{"INDU", 20, 3}, {"BASI", 10, 5}}

	_, err := BatchBuy(g, factory, items, day1, BaseLoadingRate)
	require.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Contains(t, err.Error(), "treasury")

	assert.Equal(t, 100, g.Treasury)
	assert.Equal(t, 0, g.Storage)
	assert.Empty(t, g.Orders)
	assert.Empty(t, g.Transactions)
	assert.Empty(t, g.Cargo)
}

func TestBatchBuyRejectsOverStorage(t *testing.T) {
	g := newGame(1000, 30, 50)
	_, err := BatchBuy(g, factory, []Item{{"INDU", 15, 1}, {"BASI", 10, 1}}, day1, BaseLoadingRate)
	require.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Contains(t, err.Error(), "storage")
	assert.Equal(t, 1000, g.Treasury)
	assert.Empty(t, g.Orders)
}

func TestBatchBuyCreatesOrders(t *testing.T) {
	g := newGame(200, 5, 50)
	res, err := BatchBuy(g, factory, []Item{{"INDU", 20, 3}, {"BASI", 10, 5}}, day1, 10)
	require.NoError(t, err)

	assert.Equal(t, 30, res.TotalUCN)
	assert.Equal(t, 110, res.TotalCost)
	assert.Equal(t, 3, res.LoadingDays)
	assert.Equal(t, 90, res.Balance)
	assert.Equal(t, 90, g.Treasury)
	assert.Equal(t, 35, g.Storage)
	assert.Equal(t, map[string]int{"INDU": 20, "BASI": 10}, g.Cargo)

	require.Len(t, g.Orders, 2)
	require.Len(t, g.Transactions, 2)
	assert.Equal(t, -60, g.Transactions[0].Amount)
	assert.Equal(t, -50, g.Transactions[1].Amount)
	assert.Equal(t, models.OrderInTransit, g.Orders[0].Status)
	assert.Equal(t, 1, g.Orders[0].ID)
	assert.Equal(t, 2, g.Orders[1].ID)
}

func TestBatchBuyValidatesItems(t *testing.T) {
	g := newGame(1000, 0, 100)

	_, err := BatchBuy(g, factory, []Item{{"XXXX", 1, 1}}, day1, 5)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = BatchBuy(g, factory, []Item{{"INDU", 0, 1}}, day1, 5)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = BatchBuy(g, factory, []Item{{"ALIM", 1, 1}}, day1, 5)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = BatchBuy(g, factory, []Item{{"INDU", 31, 1}}, day1, 5)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	_, err = BatchBuy(g, factory, nil, day1, 5)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.Empty(t, g.Orders)
}

func TestBuyCooldown(t *testing.T) {
	g := newGame(1000, 0, 100)
	_, err := Buy(g, factory, Item{"INDU", 5, 9}, day1, 5)
	require.NoError(t, err)

	later := calendar.AddDays(day1, 10)
	assert.Equal(t, 20, BuyCooldown(g, factory.Code, "INDU", later))
	_, err = Buy(g, factory, Item{"INDU", 5, 9}, later, 5)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)

	ready := calendar.AddDays(day1, 30)
	assert.Equal(t, 0, BuyCooldown(g, factory.Code, "INDU", ready))
	_, err = Buy(g, factory, Item{"INDU", 5, 9}, ready, 5)
	assert.NoError(t, err)

	assert.Equal(t, 0, BuyCooldown(g, factory.Code, "BASI", later))
}

func TestSell(t *testing.T) {
	g := newGame(200, 0, 50)
	res, err := Buy(g, factory, Item{"INDU", 10, 9}, day1, 5)
	require.NoError(t, err)
	orderID := res.Orders[0].ID

	sellDate := calendar.AddDays(day1, 4)
	sold, err := Sell(g, farm, orderID, 180, sellDate)
	require.NoError(t, err)

	assert.Equal(t, 90, sold.Profit)
	assert.Equal(t, 200-90+180, g.Treasury)
	assert.Equal(t, 0, g.Storage)
	assert.NotContains(t, g.Cargo, "INDU")

	order, _ := g.Order(orderID)
	assert.Equal(t, models.OrderSold, order.Status)
	require.NotNil(t, order.SellDate)
	assert.Equal(t, sellDate, *order.SellDate)
	assert.Equal(t, farm.Code, *order.SellPlanetCode)

	_, err = Sell(g, farm, orderID, 180, sellDate)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)
	assert.Equal(t, 290, g.Treasury)

	_, err = Sell(g, farm, 77, 10, sellDate)
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestSellRespectsDemand(t *testing.T) {
	g := newGame(500, 0, 100)
	res, err := BatchBuy(g, factory, []Item{{"INDU", 5, 9}, {"INDU", 5, 9}}, day1, 5)
	require.NoError(t, err)

	_, err = Sell(g, factory, res.Orders[0].ID, 100, day1)
	assert.ErrorIs(t, err, gameerr.ErrConstraint, "producers do not buy their own goods")

	_, err = Sell(g, farm, res.Orders[0].ID, 100, day1)
	require.NoError(t, err)

	next := calendar.AddDays(day1, 10)
	assert.Equal(t, 40, SellCooldown(g, farm.Code, "INDU", next))
	_, err = Sell(g, farm, res.Orders[1].ID, 100, next)
	assert.ErrorIs(t, err, gameerr.ErrConstraint)

	_, err = Sell(g, farm, res.Orders[1].ID, 100, calendar.AddDays(day1, 50))
	assert.NoError(t, err)
}

func TestMarketData(t *testing.T) {
	g := newGame(500, 0, 100)
	_, err := Buy(g, factory, Item{"INDU", 5, 9}, day1, 5)
	require.NoError(t, err)

	m := MarketData(g, factory, calendar.AddDays(day1, 5))
	require.Len(t, m.Buy, 2)
	assert.Equal(t, "INDU", m.Buy[0].Code)
	assert.True(t, m.Buy[0].Cooldown)
	assert.Equal(t, 25, m.Buy[0].DaysRemaining)
	assert.False(t, m.Buy[1].Cooldown)
	assert.Empty(t, m.Sell, "factory produces INDU")
	assert.Equal(t, 30, m.UCNLimit)

	m = MarketData(g, farm, day1)
	require.Len(t, m.Sell, 1)
	assert.True(t, m.Sell[0].CanSell)
	assert.Equal(t, 18, m.Sell[0].BaseSellPriceUnit)
}

func TestLoadingRate(t *testing.T) {
	rate, rolls := LoadingRate(dice.NewRoller(nil), nil)
	assert.Equal(t, BaseLoadingRate, rate)
	assert.Nil(t, rolls)

	ops := []models.Employee{
		{ID: 1, Experience: models.ExperienceExpert, Morale: models.MoraleMedium},
		{ID: 2, Experience: models.ExperienceNovice, Morale: models.MoraleLow},
	}
	rate, rolls = LoadingRate(dice.NewRoller(dice.NewSequence(4, 3)), ops)
	require.Len(t, rolls, 2)
	assert.Equal(t, 10, rolls[0].Rate)
	assert.Equal(t, 5, rolls[1].Rate)
	assert.Equal(t, 15, rate)
}

func TestLoadingDays(t *testing.T) {
	assert.Equal(t, 3, LoadingDays(30, 10))
	assert.Equal(t, 4, LoadingDays(31, 10))
	assert.Equal(t, 1, LoadingDays(1, 5))
	assert.Equal(t, 0, LoadingDays(0, 5))
}
