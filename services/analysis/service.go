package analysis

import (
	"context"
	"fmt"

	"github.com/estafette/estafette-build-time-analyzer/clients/buildlog"
	"github.com/estafette/estafette-build-time-analyzer/services/evaluation"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
)

// Service analyzes the build log
type Service interface {
	Analyze(ctx context.Context) (*Aggregate, error)
}

// NewService returns a new analysis.Service; an empty filter aggregates every build
func NewService(ctx context.Context, buildlogClient buildlog.Client, evaluationService evaluation.Service, timeFormat, filter string) (Service, error) {
	return &service{
		buildlogClient:    buildlogClient,
		evaluationService: evaluationService,
		timeFormat:        timeFormat,
		filter:            filter,
	}, nil
}

type service struct {
	buildlogClient    buildlog.Client
	evaluationService evaluation.Service
	timeFormat        string
	filter            string
}

func (s *service) Analyze(ctx context.Context) (aggregate *Aggregate, err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, "Analyze")
	defer span.Finish()

	lines, err := s.buildlogClient.ReadLines(ctx)
	if err != nil {
		return nil, err
	}

	var include func(BuildRecord) (bool, error)
	if s.filter != "" {
		log.Info().Msgf("Only including builds matching \"%v\"", s.filter)
		include = func(record BuildRecord) (bool, error) {
			return s.evaluationService.Evaluate(s.filter, s.evaluationService.GetParameters(record.Start, record.Seconds))
		}
	}

	aggregate, err = Analyze(lines, s.timeFormat, include)
	if err != nil {
		span.SetTag("error", true)
		return nil, fmt.Errorf("Analyzing build log failed: %w", err)
	}

	span.SetTag("builds", len(aggregate.Records))
	log.Info().Msgf("Analyzed %v builds over %v days", len(aggregate.Records), len(aggregate.Days))

	return aggregate, nil
}
