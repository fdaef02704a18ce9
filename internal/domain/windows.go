package domain

import (
	"sort"
	"time"
)

const (
	// DefaultWindowThreshold is the minimum hourly score for an hour to count
	// toward a recommended session window.
	DefaultWindowThreshold = 65.0

	// DefaultMaxWindows caps how many windows a report shows.
	DefaultMaxWindows = 3
)

// Window is a contiguous run of hours whose scores cleared the threshold.
// End is the timestamp of the first below-threshold hour after the run, or
// the last observation's timestamp when the run reaches the end of the day.
type Window struct {
	Start    time.Time
	End      time.Time
	AvgScore float64
}

// GroupBestWindows scans time-ordered, scored observations and returns the
// top windows sorted by average score descending, at most maxWindows long.
// Ties keep discovery order.
func GroupBestWindows(obs []Observation, threshold float64, maxWindows int) []Window {
	var windows []Window

	var open bool
	var start time.Time
	var sum float64
	var count int

	for _, o := range obs {
		if o.Score >= threshold {
			if !open {
				open = true
				start = o.Time
				sum = 0
				count = 0
			}
			sum += o.Score
			count++
			continue
		}
		if open {
			windows = append(windows, Window{Start: start, End: o.Time, AvgScore: sum / float64(count)})
			open = false
		}
	}

	if open && count > 0 {
		windows = append(windows, Window{Start: start, End: obs[len(obs)-1].Time, AvgScore: sum / float64(count)})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].AvgScore > windows[j].AvgScore
	})

	if len(windows) > maxWindows {
		windows = windows[:maxWindows]
	}
	return windows
}
