package trade

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Item is one line of a purchase.
type Item struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unit_price"`
}

// BuyResult describes a completed purchase.
type BuyResult struct {
	Orders      []models.TradeOrder `json:"orders"`
	TotalUCN    int                 `json:"total_ucn"`
	TotalCost   int                 `json:"total_cost"`
	LoadingRate int                 `json:"loading_rate"`
	LoadingDays int                 `json:"loading_days"`
	Balance     int                 `json:"balance"`
}

// SellResult describes a completed sale.
type SellResult struct {
	Order   models.TradeOrder `json:"order"`
	Profit  int               `json:"profit"`
	Balance int               `json:"balance"`
}

// BatchBuy purchases every item at planet or nothing at all. Storage and
// treasury are checked against the whole batch before any order exists.
// On success each item becomes one order with its own debit and transaction;
// storage is updated once. rate is the daily loading rate in UCN.
func BatchBuy(g *models.GameState, planet *models.Planet, items []Item, now calendar.Date, rate int) (BuyResult, error) {
	if len(items) == 0 {
		return BuyResult{}, gameerr.Validation("purchase has no items")
	}

	totalUCN, totalCost := 0, 0
	for i, item := range items {
		if err := checkItem(g, planet, item, now); err != nil {
			return BuyResult{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		totalUCN += item.Quantity
		totalCost += item.Quantity * item.UnitPrice
	}

	if free := g.StorageMax - g.Storage; totalUCN > free {
		return BuyResult{}, gameerr.Constraint("insufficient storage: batch needs %d UCN, %d free", totalUCN, free)
	}
	if g.Treasury < totalCost {
		return BuyResult{}, gameerr.Constraint("insufficient treasury: batch costs %d, treasury is %d", totalCost, g.Treasury)
	}

	if g.Cargo == nil {
		g.Cargo = make(map[string]int)
	}

	result := BuyResult{TotalUCN: totalUCN, TotalCost: totalCost}
	for _, item := range items {
		cost := item.Quantity * item.UnitPrice
		g.Treasury -= cost

		order := models.TradeOrder{
			ID:              g.NextOrderID(),
			Area:            g.Area,
			ProductCode:     item.ProductCode,
			Quantity:        item.Quantity,
			BuyPlanetCode:   planet.Code,
			BuyPlanetName:   planet.Name,
			BuyPricePerUnit: item.UnitPrice,
			BuyPriceTotal:   cost,
			BuyDate:         now,
			Traceability:    true,
			Status:          models.OrderInTransit,
		}
		g.Orders = append(g.Orders, order)
		result.Orders = append(result.Orders, order)

		g.Transactions = append(g.Transactions, models.Transaction{
			ID:          uuid.New().String(),
			Date:        now,
			Amount:      -cost,
			Description: fmt.Sprintf("Purchase of %d UCN of %s", item.Quantity, item.ProductCode),
			Category:    models.CategoryTrade,
		})
		g.Cargo[item.ProductCode] += item.Quantity
	}
	g.Storage += totalUCN

	result.LoadingRate = rate
	result.LoadingDays = LoadingDays(totalUCN, rate)
	result.Balance = g.Treasury
	return result, nil
}

// Buy purchases a single item with the same rules as a batch.
func Buy(g *models.GameState, planet *models.Planet, item Item, now calendar.Date, rate int) (BuyResult, error) {
	return BatchBuy(g, planet, []Item{item}, now, rate)
}

// Sell closes an in-transit order at planet for price credits.
func Sell(g *models.GameState, planet *models.Planet, orderID, price int, now calendar.Date) (SellResult, error) {
	order, ok := g.Order(orderID)
	if !ok {
		return SellResult{}, gameerr.NotFound("trade order %d", orderID)
	}
	if order.IsSold() {
		return SellResult{}, gameerr.Constraint("trade order %d is already sold", orderID)
	}
	if price < 0 {
		return SellResult{}, gameerr.Validation("sell price must be non-negative, got %d", price)
	}
	if planet.Produces(order.ProductCode) {
		return SellResult{}, gameerr.Constraint("%s produces %s and does not buy it", planet.Name, order.ProductCode)
	}
	if days := SellCooldown(g, planet.Code, order.ProductCode, now); days > 0 {
		return SellResult{}, gameerr.Constraint("%s has no demand for %s for %d more days", planet.Name, order.ProductCode, days)
	}

	code, total, sold, profit := planet.Code, price, now, price-order.BuyPriceTotal
	order.SellPlanetCode = &code
	order.SellPlanetName = planet.Name
	order.SellPriceTotal = &total
	order.SellDate = &sold
	order.Profit = &profit
	order.Status = models.OrderSold

	g.Treasury += price
	g.Storage = max(g.Storage-order.Quantity, 0)
	if g.Cargo != nil {
		left := g.Cargo[order.ProductCode] - order.Quantity
		if left <= 0 {
			delete(g.Cargo, order.ProductCode)
		} else {
			g.Cargo[order.ProductCode] = left
		}
	}

	g.Transactions = append(g.Transactions, models.Transaction{
		ID:          uuid.New().String(),
		Date:        now,
		Amount:      price,
		Description: fmt.Sprintf("Sale of %d UCN of %s", order.Quantity, order.ProductCode),
		Category:    models.CategoryTrade,
	})

	return SellResult{Order: *order, Profit: profit, Balance: g.Treasury}, nil
}

func checkItem(g *models.GameState, planet *models.Planet, item Item, now calendar.Date) error {
	if _, err := LookupProduct(item.ProductCode); err != nil {
		return err
	}
	if item.Quantity <= 0 {
		return gameerr.Validation("quantity must be positive, got %d", item.Quantity)
	}
	if item.UnitPrice < 0 {
		return gameerr.Validation("unit price must be non-negative, got %d", item.UnitPrice)
	}
	if !planet.Produces(item.ProductCode) {
		return gameerr.Constraint("%s does not produce %s", planet.Name, item.ProductCode)
	}
	if planet.UCNPerOrder > 0 && item.Quantity > planet.UCNPerOrder {
		return gameerr.Constraint("%s sells at most %d UCN per order", planet.Name, planet.UCNPerOrder)
	}
	if days := BuyCooldown(g, planet.Code, item.ProductCode, now); days > 0 {
		return gameerr.Constraint("%s is out of %s for %d more days", planet.Name, item.ProductCode, days)
	}
	return nil
}
