package estimator

import "math"

// epsilon is the gap between 1 and the next representable float64.
var epsilon = math.Nextafter(1, 2) - 1

// Round rounds x half-up to n decimal digits. Adding epsilon first absorbs
// binary representation error such as 1.005 being stored as 1.00499999...
func Round(x float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Floor((x+epsilon)*p+0.5) / p
}
