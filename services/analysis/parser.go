package analysis

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const separator = ": "

type parserState int

const (
	awaitingStart parserState = iota
	awaitingFinish
)

// Parser pairs START and FINISH lines into build records
type Parser struct {
	timeFormat   string
	location     *time.Location
	state        parserState
	pendingStart *time.Time
}

// NewParser returns a Parser awaiting a START line; timestamps are parsed with timeFormat as UTC wall-clock times
func NewParser(timeFormat string) *Parser {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &Parser{
		timeFormat: timeFormat,
		location:   time.UTC,
		state:      awaitingStart,
	}
}

// ParseLogLine splits a line on the first ": " into its tag and timestamp
func ParseLogLine(line string) (LogLine, error) {
	parts := strings.SplitN(line, separator, 2)
	if len(parts) != 2 {
		return LogLine{}, &LineError{Line: line, Kind: ErrMalformedLine}
	}

	entryType := EntryType(parts[0])
	switch entryType {
	case EntryTypeStart, EntryTypeFinish:
	default:
		return LogLine{}, &LineError{Line: line, Kind: ErrMalformedLine, Err: fmt.Errorf("unknown tag %v", parts[0])}
	}

	return LogLine{Type: entryType, Timestamp: parts[1]}, nil
}

// ParseTimestamp parses a timestamp with the parser's time format
func (p *Parser) ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(p.timeFormat, value, p.location)
}

// FormatTimestamp formats the wall-clock time of t in its own location with the parser's time format
func (p *Parser) FormatTimestamp(t time.Time) string {
	return t.Format(p.timeFormat)
}

// Expects returns the entry type the parser accepts next
func (p *Parser) Expects() EntryType {
	if p.state == awaitingFinish {
		return EntryTypeFinish
	}
	return EntryTypeStart
}

// PendingStart returns the unmatched START timestamp, nil while awaiting a START
func (p *Parser) PendingStart() *time.Time {
	return p.pendingStart
}

// ProcessLine consumes one trimmed, non-empty line and returns a record once a FINISH completes a build
func (p *Parser) ProcessLine(line string) (*BuildRecord, error) {

	logLine, err := ParseLogLine(line)
	if err != nil {
		return nil, err
	}

	if logLine.Type != p.Expects() {
		return nil, &LineError{Line: line, Kind: ErrUnexpectedToken, Err: fmt.Errorf("expected %v, got %v", p.Expects(), logLine.Type)}
	}

	timestamp, err := p.ParseTimestamp(logLine.Timestamp)
	if err != nil {
		return nil, &LineError{Line: line, Kind: ErrTimestampParse, Err: err}
	}

	if logLine.Type == EntryTypeStart {
		p.pendingStart = &timestamp
		p.state = awaitingFinish
		return nil, nil
	}

	record := &BuildRecord{
		Start:   *p.pendingStart,
		End:     timestamp,
		Seconds: timestamp.Sub(*p.pendingStart).Seconds(),
	}

	p.pendingStart = nil
	p.state = awaitingStart

	return record, nil
}

// Analyze folds all lines through a new parser and aggregates the completed builds; include can be nil to keep every build
func Analyze(lines []string, timeFormat string, include func(BuildRecord) (bool, error)) (*Aggregate, error) {

	parser := NewParser(timeFormat)
	aggregate := NewAggregate()

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		record, err := parser.ProcessLine(line)
		if err != nil {
			var lineErr *LineError
			if errors.As(err, &lineErr) {
				lineErr.LineNumber = i + 1
			}
			return nil, err
		}
		if record == nil {
			continue
		}

		if include != nil {
			included, err := include(*record)
			if err != nil {
				return nil, fmt.Errorf("filtering build on line %v: %w", i+1, err)
			}
			if !included {
				continue
			}
		}

		aggregate.Add(*record)
	}

	aggregate.PendingStart = parser.PendingStart()

	return aggregate, nil
}
