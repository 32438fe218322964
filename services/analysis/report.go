package analysis

import "sort"

// OverallReport summarizes all builds in the log
type OverallReport struct {
	BuildCount        int
	DayCount          int
	TotalTime         float64
	AverageBuildTime  float64
	AverageTimePerDay float64
}

// TodayReport summarizes the builds that started on a single day
type TodayReport struct {
	Day              Day
	BuildCount       int
	TotalTime        float64
	AverageBuildTime float64
}

// DayReport is one row of the per-day breakdown
type DayReport = TodayReport

// GetOverallReport returns the overall report; ok is false when there are no builds
func GetOverallReport(aggregate *Aggregate) (report OverallReport, ok bool) {
	if aggregate == nil || len(aggregate.Durations) == 0 {
		return report, false
	}

	totalTime := Total(aggregate.Durations)
	dayCount := len(aggregate.Days)

	return OverallReport{
		BuildCount:        len(aggregate.Durations),
		DayCount:          dayCount,
		TotalTime:         totalTime,
		AverageBuildTime:  Average(aggregate.Durations),
		AverageTimePerDay: totalTime / float64(dayCount),
	}, true
}

// GetTodayReport returns the report for the builds started on today; ok is false when there are none
func GetTodayReport(aggregate *Aggregate, today Day) (report TodayReport, ok bool) {
	if aggregate == nil {
		return report, false
	}

	durations, exists := aggregate.Days[today]
	if !exists || len(durations) == 0 {
		return report, false
	}

	return getDayReport(today, durations), true
}

// GetDailyReports returns a report per day, oldest day first
func GetDailyReports(aggregate *Aggregate) []DayReport {

	reports := make([]DayReport, 0)
	if aggregate == nil {
		return reports
	}

	for day, durations := range aggregate.Days {
		reports = append(reports, getDayReport(day, durations))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Day < reports[j].Day
	})

	return reports
}

func getDayReport(day Day, durations []float64) TodayReport {
	return TodayReport{
		Day:              day,
		BuildCount:       len(durations),
		TotalTime:        Total(durations),
		AverageBuildTime: Average(durations),
	}
}
