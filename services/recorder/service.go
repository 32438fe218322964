package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estafette/estafette-build-time-analyzer/clients/buildlog"
	"github.com/estafette/estafette-build-time-analyzer/services/analysis"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidEntryType is returned for entry types other than START and FINISH
	ErrInvalidEntryType = errors.New("entry type should be START or FINISH")
	// ErrFinishBeforeStart is returned for a FINISH earlier than the START it completes
	ErrFinishBeforeStart = errors.New("finish is earlier than start")
)

// Service appends START and FINISH entries to the build log
type Service interface {
	Record(ctx context.Context, entryType, timestamp string) (analysis.LogLine, error)
}

// NewService returns a new recorder.Service
func NewService(ctx context.Context, buildlogClient buildlog.Client, timeFormat string) (Service, error) {
	return &service{
		buildlogClient: buildlogClient,
		timeFormat:     timeFormat,
		now:            time.Now,
	}, nil
}

type service struct {
	buildlogClient buildlog.Client
	timeFormat     string
	now            func() time.Time
}

// Record appends an entry of entryType; an empty timestamp or "now" records the current time
func (s *service) Record(ctx context.Context, entryType, timestamp string) (logLine analysis.LogLine, err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, "Record")
	defer span.Finish()

	entry := analysis.EntryType(strings.ToUpper(strings.TrimSpace(entryType)))
	if entry != analysis.EntryTypeStart && entry != analysis.EntryTypeFinish {
		return logLine, fmt.Errorf("%w, got %v", ErrInvalidEntryType, entryType)
	}

	parser := analysis.NewParser(s.timeFormat)

	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" || strings.EqualFold(timestamp, "now") {
		timestamp = parser.FormatTimestamp(s.now())
	}
	logLine = analysis.LogLine{Type: entry, Timestamp: timestamp}

	recordedAt, err := parser.ParseTimestamp(timestamp)
	if err != nil {
		return logLine, &analysis.LineError{Line: logLine.String(), Kind: analysis.ErrTimestampParse, Err: err}
	}

	// replay the existing log so the new entry keeps it alternating
	lines, err := s.buildlogClient.ReadLines(ctx)
	if err != nil && !errors.Is(err, buildlog.ErrLogFileNotFound) {
		return logLine, err
	}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err = parser.ProcessLine(line); err != nil {
			var lineErr *analysis.LineError
			if errors.As(err, &lineErr) {
				lineErr.LineNumber = i + 1
			}
			return logLine, fmt.Errorf("Existing build log is invalid: %w", err)
		}
	}

	if parser.Expects() != entry {
		return logLine, &analysis.LineError{Line: logLine.String(), Kind: analysis.ErrUnexpectedToken, Err: fmt.Errorf("expected %v, got %v", parser.Expects(), entry)}
	}
	if entry == analysis.EntryTypeFinish && recordedAt.Before(*parser.PendingStart()) {
		return logLine, fmt.Errorf("%w: %v is before %v", ErrFinishBeforeStart, timestamp, parser.FormatTimestamp(*parser.PendingStart()))
	}

	err = s.buildlogClient.AppendLine(ctx, logLine.String())
	if err != nil {
		return logLine, err
	}

	log.Info().Msgf("Logged time type=%v, time=%v", logLine.Type, logLine.Timestamp)

	return logLine, nil
}
