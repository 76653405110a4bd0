package models

import (
	"time"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
)

// OrderStatus represents the state of a trade order
type OrderStatus string

const (
	OrderInTransit OrderStatus = "in_transit"
	OrderSold      OrderStatus = "sold"
)

// TradeOrder is one purchased cargo lot, later sold as a whole
type TradeOrder struct {
	ID              int            `json:"id"`
	Area            int            `json:"area,omitempty"`
	ProductCode     string         `json:"product_code"`
	Quantity        int            `json:"quantity"`
	BuyPlanetCode   int            `json:"buy_planet_code"`
	BuyPlanetName   string         `json:"buy_planet_name"`
	BuyPricePerUnit int            `json:"buy_price_per_unit"`
	BuyPriceTotal   int            `json:"total_buy_price"`
	BuyDate         calendar.Date  `json:"buy_date"`
	Traceability    bool           `json:"traceability"`
	Status          OrderStatus    `json:"status"`
	SellPlanetCode  *int           `json:"sell_planet_code,omitempty"`
	SellPlanetName  string         `json:"sell_planet_name,omitempty"`
	SellPriceTotal  *int           `json:"sell_price_total,omitempty"`
	SellDate        *calendar.Date `json:"sell_date,omitempty"`
	Profit          *int           `json:"profit,omitempty"`
}

// IsSold reports whether the order has been closed
func (o *TradeOrder) IsSold() bool {
	return o.Status == OrderSold
}

// Transaction categories
const (
	CategorySalaries  = "salaries"
	CategoryTrade     = "trade"
	CategoryPassenger = "passengers"
	CategoryOther     = "other"
)

// Transaction is an entry in the treasury ledger
type Transaction struct {
	ID          string        `json:"id"`
	Date        calendar.Date `json:"date"`
	Amount      int           `json:"amount"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
}

// DiceRollRecord is an entry in the dice history
type DiceRollRecord struct {
	GameDate  calendar.Date `json:"game_date"`
	Timestamp time.Time     `json:"timestamp"`
	NumDice   int           `json:"num_dice"`
	Results   []int         `json:"results"`
	Total     int           `json:"total"`
	Manual    bool          `json:"is_manual"`
	Purpose   string        `json:"purpose"`
}
