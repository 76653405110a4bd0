package trade

import (
	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// BuyOption is a product a planet sells, with its production cooldown.
type BuyOption struct {
	Product
	BaseProfit    int  `json:"base_profit"`
	MaxUCN        int  `json:"max_ucn"`
	Cooldown      bool `json:"cooldown"`
	DaysRemaining int  `json:"days_remaining"`
}

// SellOption is an in-transit order a planet would buy, with its demand
// cooldown.
type SellOption struct {
	OrderID           int    `json:"order_id"`
	ProductCode       string `json:"product_code"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	BuyPrice          int    `json:"buy_price"`
	BaseSellPriceUnit int    `json:"base_sell_price_unit"`
	CanSell           bool   `json:"can_sell"`
	DaysRemaining     int    `json:"days_remaining"`
}

// Market is what can be traded at one planet on one date.
type Market struct {
	PlanetCode int          `json:"planet_code"`
	PlanetName string       `json:"planet_name"`
	Buy        []BuyOption  `json:"buy"`
	Sell       []SellOption `json:"sell"`
	UCNLimit   int          `json:"planet_ucn_limit"`
}

// MarketData lists buy and sell options at planet as of now.
func MarketData(g *models.GameState, planet *models.Planet, now calendar.Date) Market {
	m := Market{
		PlanetCode: planet.Code,
		PlanetName: planet.Name,
		Buy:        []BuyOption{},
		Sell:       []SellOption{},
		UCNLimit:   planet.UCNPerOrder,
	}

	for _, code := range planet.Products {
		p, err := LookupProduct(code)
		if err != nil {
			continue
		}
		remaining := BuyCooldown(g, planet.Code, code, now)
		m.Buy = append(m.Buy, BuyOption{
			Product:       p,
			BaseProfit:    p.SellPrice - p.BuyPrice,
			MaxUCN:        planet.UCNPerOrder,
			Cooldown:      remaining > 0,
			DaysRemaining: remaining,
		})
	}

	for _, o := range g.Orders {
		if o.Status != models.OrderInTransit || planet.Produces(o.ProductCode) {
			continue
		}
		p, _ := LookupProduct(o.ProductCode)
		remaining := SellCooldown(g, planet.Code, o.ProductCode, now)
		m.Sell = append(m.Sell, SellOption{
			OrderID:           o.ID,
			ProductCode:       o.ProductCode,
			ProductName:       p.Name,
			Quantity:          o.Quantity,
			BuyPrice:          o.BuyPriceTotal,
			BaseSellPriceUnit: p.SellPrice,
			CanSell:           remaining == 0,
			DaysRemaining:     remaining,
		})
	}
	return m
}

// BuyCooldown returns the days left before planet can sell product again,
// counted from its most recent purchase there.
func BuyCooldown(g *models.GameState, planetCode int, productCode string, now calendar.Date) int {
	p, err := LookupProduct(productCode)
	if err != nil {
		return 0
	}

	var last *calendar.Date
	for i := range g.Orders {
		o := &g.Orders[i]
		if o.BuyPlanetCode != planetCode || o.ProductCode != productCode {
			continue
		}
		if last == nil || calendar.Before(*last, o.BuyDate) {
			last = &o.BuyDate
		}
	}
	return remaining(last, now, p.ProductionDays)
}

// SellCooldown returns the days left before planet buys product again,
// counted from the most recent sale of that product there.
func SellCooldown(g *models.GameState, planetCode int, productCode string, now calendar.Date) int {
	p, err := LookupProduct(productCode)
	if err != nil {
		return 0
	}

	var last *calendar.Date
	for i := range g.Orders {
		o := &g.Orders[i]
		if !o.IsSold() || o.ProductCode != productCode || o.SellDate == nil ||
			o.SellPlanetCode == nil || *o.SellPlanetCode != planetCode {
			continue
		}
		if last == nil || calendar.Before(*last, *o.SellDate) {
			last = o.SellDate
		}
	}
	return remaining(last, now, p.DemandDays)
}

func remaining(last *calendar.Date, now calendar.Date, cooldown int) int {
	if last == nil {
		return 0
	}
	passed := calendar.DaysBetween(*last, now)
	if passed >= cooldown {
		return 0
	}
	return cooldown - passed
}
