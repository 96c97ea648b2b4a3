// Package costing holds the weighted-average cost arithmetic shared by
// purchases and production runs, plus the rounding rules for stored values.
package costing

import "github.com/shopspring/decimal"

// Decimal places persisted for each kind of value.
const (
	QuantityPlaces int32 = 4
	UnitCostPlaces int32 = 4
	MoneyPlaces    int32 = 2
)

// NewAverage returns the weighted-average unit cost after addedQty units worth
// addedValue join oldQty units carried at oldAvg.
//
//	newAvg = (oldQty*oldAvg + addedValue) / (oldQty + addedQty)
//
// A non-positive resulting quantity yields zero.
func NewAverage(oldQty, oldAvg, addedQty, addedValue decimal.Decimal) decimal.Decimal {
	newQty := oldQty.Add(addedQty)
	if !newQty.IsPositive() {
		return decimal.Zero
	}
	oldValue := oldQty.Mul(oldAvg)
	return UnitCost(oldValue.Add(addedValue).Div(newQty))
}

// BatchRatio scales a recipe's standard yield to the requested output.
func BatchRatio(quantityToMake, outputYield decimal.Decimal) decimal.Decimal {
	if !outputYield.IsPositive() {
		return decimal.Zero
	}
	return quantityToMake.Div(outputYield)
}

// Quantity rounds a stock quantity to its stored precision.
func Quantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityPlaces)
}

// UnitCost rounds a per-unit cost to its stored precision.
func UnitCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(UnitCostPlaces)
}

// Money rounds an amount half away from zero to cents.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
