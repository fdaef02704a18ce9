// Package domain models hourly surf conditions and the session-quality score.
//
// # Data Source
//
// Observations come from the Open-Meteo Marine API (wave height, period and
// direction, plus wind when the marine model carries it) with the general
// Open-Meteo Forecast API as a wind fallback. Both return hourly series
// aligned by index and expressed in the spot's local time zone. Wind speeds
// are km/h as delivered by the API; no unit conversion happens here.
//
// # Scoring Model
//
// Each hour gets a 0-100 suitability score from three weighted components:
//
//	Height (max 40 pts): peaks at 1.2 m and decays linearly to zero as the
//	  distance from 1.2 m approaches 1.2 m, so anything at or beyond 2.4 m
//	  (or flat water) contributes nothing.
//	Period (max 40 pts): zero below 6 s, ramps to 24 pts between 6 s and 9 s,
//	  then to the full 40 pts between 9 s and 14 s, capped beyond.
//	Wind (max 20 pts): 20 pts at <=5 km/h, 10 pts at <=10 km/h, zero above.
//	  Hours with unknown wind speed get no wind points at all.
//
// An hour with no usable swell (height <= 0 or period <= 0) scores exactly 0.
//
// # Presentation Conventions
//
// Scores render as stars: "-" below 15, otherwise round(score/20) clamped to
// 1-5 stars. Quality labels use fixed thresholds 25/45/65/80 (baja,
// media-baja, media, buena, muy buena).
//
// Directions follow the meteorological "from" convention: 0 deg = from the
// north. Degrees bucket into eight 45-degree compass sectors, rounding at
// the sector midpoint: N, NE, E, SE, S, SW, W, NW.
//
// # Session Windows
//
// A window is a contiguous run of hours whose scores clear a threshold
// (default 65). A below-threshold hour closes the open run and its own
// timestamp becomes the window end; a run still open at the end of the day
// closes on the last observation's timestamp instead. This asymmetry is
// deliberate, it matches the boundaries users have been shown historically.
package domain
