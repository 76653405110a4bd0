// Package trade implements the cargo ledger: market cooldowns and atomic
// purchase and sale of trade orders.
package trade

import (
	"sort"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// Product is a tradeable good with list prices and market cooldowns.
type Product struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	BuyPrice       int    `json:"buy"`
	SellPrice      int    `json:"sell"`
	ProductionDays int    `json:"prod_days"`
	DemandDays     int    `json:"demand_days"`
}

var products = map[string]Product{
	"INDU": {"INDU", "Productos industriales", 9, 18, 30, 50},
	"BASI": {"BASI", "Materiales básicos", 11, 21, 40, 50},
	"ALIM": {"ALIM", "Alimentos", 4, 11, 30, 40},
	"MADE": {"MADE", "Madera", 6, 17, 30, 50},
	"AGUA": {"AGUA", "Agua potable", 2, 5, 20, 20},
	"MICO": {"MICO", "Minerales comunes", 5, 9, 30, 50},
	"MIRA": {"MIRA", "Minerales raros", 13, 30, 50, 60},
	"MIPR": {"MIPR", "Metales preciosos", 20, 60, 80, 80},
	"PAVA": {"PAVA", "Productos avanzados", 15, 30, 40, 60},
	"A":    {"A", "Armas (Espacial)", 7, 15, 40, 40},
	"AE":   {"AE", "Armas (Espacial+)", 10, 23, 60, 60},
	"AEI":  {"AEI", "Armas (Interestelar)", 20, 45, 80, 80},
	"COM":  {"COM", "Combustible", 4, 7, 30, 20},
}

// LookupProduct returns the product with the given code.
func LookupProduct(code string) (Product, error) {
	p, ok := products[code]
	if !ok {
		return Product{}, gameerr.Validation("unknown product code %q", code)
	}
	return p, nil
}

// Products lists all products sorted by code.
func Products() []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
