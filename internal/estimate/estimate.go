// Package estimate aggregates renovation cost estimates.
package estimate

import (
	"strings"
)

// Category names as they appear on estimate rows
const (
	CategoryMaterials = "Материалы"
	CategoryWorks     = "Работы"
)

// LineItem is one row of an estimate
type LineItem struct {
	Category  string  `json:"category" yaml:"category"`
	Name      string  `json:"name" yaml:"name"`
	Unit      string  `json:"unit" yaml:"unit"`
	Quantity  float64 `json:"quantity" yaml:"quantity"`
	UnitPrice float64 `json:"price" yaml:"price"`
}

// Total is quantity times unit price, unrounded
func (i LineItem) Total() float64 {
	return i.Quantity * i.UnitPrice
}

// Summary holds the per-category subtotals of an estimate
type Summary struct {
	Items      []LineItem
	Materials  float64
	Works      float64
	Other      float64
	GrandTotal float64
}

// CanonicalCategory maps a category tag to CategoryMaterials or CategoryWorks.
// Tags that match neither are returned unchanged.
func CanonicalCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "материалы", "materials", "material":
		return CategoryMaterials
	case "работы", "works", "work", "labor", "labour":
		return CategoryWorks
	default:
		return category
	}
}

// Aggregate sums the item totals by category. Items outside the materials and
// works categories are counted in Other so the grand total covers every row.
func Aggregate(items []LineItem) Summary {
	s := Summary{Items: items}
	for _, item := range items {
		switch CanonicalCategory(item.Category) {
		case CategoryMaterials:
			s.Materials += item.Total()
		case CategoryWorks:
			s.Works += item.Total()
		default:
			s.Other += item.Total()
		}
	}
	s.GrandTotal = s.Materials + s.Works + s.Other
	return s
}

// DefaultItems is the starter estimate for a 20 m² room: laminate flooring and painted walls
func DefaultItems() []LineItem {
	return []LineItem{
		{Category: CategoryMaterials, Name: "Ламинат Premium 33 класс", Unit: "м²", Quantity: 20, UnitPrice: 1200},
		{Category: CategoryMaterials, Name: "Краска латексная белая", Unit: "л", Quantity: 15, UnitPrice: 450},
		{Category: CategoryWorks, Name: "Демонтаж старого покрытия", Unit: "м²", Quantity: 20, UnitPrice: 350},
		{Category: CategoryWorks, Name: "Укладка ламината", Unit: "м²", Quantity: 20, UnitPrice: 800},
		{Category: CategoryWorks, Name: "Покраска стен", Unit: "м²", Quantity: 45, UnitPrice: 400},
	}
}
