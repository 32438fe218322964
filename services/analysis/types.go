package analysis

import (
	"fmt"
	"time"
)

// DefaultTimeFormat matches the MM/DD/YY HH:MM:SS timestamps written to the build log
const DefaultTimeFormat = "01/02/06 15:04:05"

// EntryType is the tag in front of every build log line
type EntryType string

const (
	// EntryTypeStart marks the start of a build
	EntryTypeStart EntryType = "START"
	// EntryTypeFinish marks the end of the most recently started build
	EntryTypeFinish EntryType = "FINISH"
)

// LogLine is a single parsed line of the build log
type LogLine struct {
	Type      EntryType
	Timestamp string
}

func (l LogLine) String() string {
	return fmt.Sprintf("%v%v%v", l.Type, separator, l.Timestamp)
}

// BuildRecord is one completed START/FINISH interval
type BuildRecord struct {
	Start   time.Time
	End     time.Time
	Seconds float64
}

// Day is a calendar date in YYYY-MM-DD form
type Day string

const dayLayout = "2006-01-02"

// DayOf returns the calendar date of t in t's own location
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// ParseDay parses a YYYY-MM-DD date
func ParseDay(value string) (Day, error) {
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return "", err
	}
	return DayOf(t), nil
}

// Aggregate holds the result of a single analysis run
type Aggregate struct {
	Records   []BuildRecord
	Durations []float64
	Days      map[Day][]float64

	// PendingStart is set when the log ends with a START that has no FINISH yet
	PendingStart *time.Time

	dayOrder []Day
}

// NewAggregate returns an empty Aggregate
func NewAggregate() *Aggregate {
	return &Aggregate{
		Records:   make([]BuildRecord, 0),
		Durations: make([]float64, 0),
		Days:      make(map[Day][]float64),
		dayOrder:  make([]Day, 0),
	}
}

// Add appends a record to the overall sequence and to the bucket of the day it started on
func (a *Aggregate) Add(record BuildRecord) {
	a.Records = append(a.Records, record)
	a.Durations = append(a.Durations, record.Seconds)

	day := DayOf(record.Start)
	if _, ok := a.Days[day]; !ok {
		a.dayOrder = append(a.dayOrder, day)
	}
	a.Days[day] = append(a.Days[day], record.Seconds)
}

// DayOrder returns the days in the order they first appeared in the log
func (a *Aggregate) DayOrder() []Day {
	return a.dayOrder
}
