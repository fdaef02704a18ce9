package domain

import (
	"math"
	"strings"
)

const (
	idealHeightM = 1.2

	heightWeight = 40.0
	periodWeight = 40.0

	// Wind points by speed band.
	windCalmKmh   = 5.0
	windLightKmh  = 10.0
	windCalmPts   = 20.0
	windLightPts  = 10.0

	// Stars below this score render as "no rating".
	minRatedScore = 15.0
)

// ScoreHour computes the 0-100 suitability score for a single observation.
// Hours with no usable swell (height or period at or below zero) score 0.
func ScoreHour(o Observation) float64 {
	h := o.HeightM
	t := o.PeriodS

	if h <= 0 || t <= 0 {
		return 0
	}

	score := 0.0

	heightFactor := math.Max(0, 1-math.Abs(h-idealHeightM)/idealHeightM)
	score += heightFactor * heightWeight

	var periodFactor float64
	switch {
	case t < 6:
		periodFactor = 0
	case t < 9:
		periodFactor = (t - 6) / 3 * 0.6
	default:
		periodFactor = 0.6 + math.Min((t-9)/5*0.4, 0.4)
	}
	score += periodFactor * periodWeight

	if o.WindSpeedKmh != nil {
		switch v := *o.WindSpeedKmh; {
		case v <= windCalmKmh:
			score += windCalmPts
		case v <= windLightKmh:
			score += windLightPts
		}
	}

	return math.Max(0, math.Min(100, score))
}

// ScoreAll assigns each observation's Score in place. It is the only place
// scores are written.
func ScoreAll(obs []Observation) {
	for i := range obs {
		obs[i].Score = ScoreHour(obs[i])
	}
}

// Stars renders a score as one to five stars, or "-" below the rating floor.
func Stars(score float64) string {
	if score < minRatedScore {
		return "-"
	}
	n := int(math.Round(score / 20))
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n)
}

// QualityLabel maps a score to the user-facing quality band.
func QualityLabel(score float64) string {
	switch {
	case score < 25:
		return "baja"
	case score < 45:
		return "media-baja"
	case score < 65:
		return "media"
	case score < 80:
		return "buena"
	default:
		return "muy buena"
	}
}
