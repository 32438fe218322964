package evaluation

import (
	"context"
	"errors"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/rs/zerolog/log"
)

// Service evaluates filter expressions against completed builds
//go:generate mockgen -package=evaluation -destination ./mock.go -source=service.go
type Service interface {
	Evaluate(string, map[string]interface{}) (bool, error)
	GetParameters(start time.Time, seconds float64) map[string]interface{}
}

// NewService returns a new evaluation.Service
func NewService(ctx context.Context) (Service, error) {
	return &service{}, nil
}

type service struct {
}

func (s *service) Evaluate(input string, parameters map[string]interface{}) (result bool, err error) {

	if input == "" {
		return false, errors.New("Filter expression is empty")
	}

	log.Debug().Msgf("Evaluating filter expression \"%v\" with parameters \"%v\"", input, parameters)

	expression, err := govaluate.NewEvaluableExpression(input)
	if err != nil {
		return
	}

	r, err := expression.Evaluate(parameters)
	if err != nil {
		return false, err
	}

	log.Debug().Msgf("Result of filter expression \"%v\" is \"%v\"", input, r)

	if result, ok := r.(bool); ok {
		return result, nil
	}

	return false, errors.New("Result of evaluating filter expression is not of type boolean")
}

func (s *service) GetParameters(start time.Time, seconds float64) map[string]interface{} {

	parameters := make(map[string]interface{}, 4)
	parameters["duration"] = seconds
	parameters["date"] = start.Format("2006-01-02")
	parameters["weekday"] = start.Weekday().String()
	parameters["hour"] = float64(start.Hour())

	return parameters
}
