package utils

import "math"

// RoundFloat rounds a float64 to a specified number of decimal places. Used
// only at the response boundary when decimals are converted for display.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
