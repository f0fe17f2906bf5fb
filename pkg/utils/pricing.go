package utils

import "math"

// Round2 rounds to two decimal places, the precision every stored monetary
// amount carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TaxAmount computes tax forward from a pre-tax base: base * rate / 100.
func TaxAmount(base, ratePct float64) float64 {
	return Round2(base * ratePct / 100)
}

// TotalWithTax is the tax-inclusive amount charged at checkout.
func TotalWithTax(base, ratePct float64) float64 {
	return Round2(base + TaxAmount(base, ratePct))
}

// BaseFromTotal reverse-derives the pre-tax base from a tax-inclusive total.
// Display code should prefer the stored base; this exists for legacy rows
// created before base/tax were persisted.
func BaseFromTotal(total, ratePct float64) float64 {
	return total / (1 + ratePct/100)
}

// ToMinorUnits converts a major-unit amount to minor units (paise) as the
// gateway expects.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
