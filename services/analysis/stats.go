package analysis

import (
	"fmt"
	"math"
	"strings"
)

const (
	secondsInDay    = 86400
	secondsInHour   = 3600
	secondsInMinute = 60
)

// Average returns the arithmetic mean of durations, or 0 when there are none
func Average(durations []float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	return Total(durations) / float64(len(durations))
}

// Total returns the sum of durations
func Total(durations []float64) float64 {
	total := 0.0
	for _, d := range durations {
		total += d
	}
	return total
}

// HumanDuration renders seconds as "N days, N hours, N minutes, N seconds", leaving out zero units except seconds
func HumanDuration(seconds float64) string {

	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	remainder := int64(math.Floor(seconds))

	days := remainder / secondsInDay
	remainder %= secondsInDay
	hours := remainder / secondsInHour
	remainder %= secondsInHour
	minutes := remainder / secondsInMinute
	remainder %= secondsInMinute

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	// always include seconds
	parts = append(parts, pluralize(remainder, "second"))

	return sign + strings.Join(parts, ", ")
}

func pluralize(value int64, unit string) string {
	if value == 1 {
		return fmt.Sprintf("%v %v", value, unit)
	}
	return fmt.Sprintf("%v %vs", value, unit)
}
