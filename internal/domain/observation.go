package domain

import "time"

// Observation is one hour's marine and wind sample at a beach.
// WindSpeedKmh is nil when neither upstream source supplied a value; that is
// distinct from 0 (calm) and renders as "no data".
type Observation struct {
	Time         time.Time
	HeightM      float64
	PeriodS      float64
	WindSpeedKmh *float64
	WindDirDeg   float64
	SwellDirDeg  float64

	// Score is assigned by ScoreAll; it is never set upstream.
	Score float64
}

// DaylightWindow is the sunrise/sunset span for one day. Available is false
// when the upstream daily query failed; callers must then skip daylight
// filtering rather than treat the zero times as midnight.
type DaylightWindow struct {
	Sunrise   time.Time
	Sunset    time.Time
	Available bool
}

// FilterDaylight keeps the observations inside [sunrise, sunset). When the
// window is unavailable, or filtering would drop every observation, the
// original slice is returned unchanged.
func FilterDaylight(obs []Observation, dw DaylightWindow) []Observation {
	if !dw.Available {
		return obs
	}

	filtered := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if !o.Time.Before(dw.Sunrise) && o.Time.Before(dw.Sunset) {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return obs
	}
	return filtered
}
