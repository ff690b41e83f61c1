package utils

import "math"

// Round rounds a number to 2 decimal places for monetary calculations
func Round(num float64) float64 {
	return math.Round(num*MoneyPrecision) / MoneyPrecision
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// Tax computes the tax owed on an amount at the fixed rate.
func Tax(amount float64) float64 {
	return Round(amount * TaxRate)
}
