package domain

import "math"

// compassLabels are the eight 45-degree sectors, "from" convention:
// 0 deg = N, 90 = E, 180 = S, 270 = W.
var compassLabels = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassSector returns the 0-7 sector index for a direction in degrees,
// rounding at the sector midpoint.
func CompassSector(degrees float64) int {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return int(d/45+0.5) % 8
}

// Compass renders a direction as its compass abbreviation.
func Compass(degrees float64) string {
	return compassLabels[CompassSector(degrees)]
}
