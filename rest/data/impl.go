package data

import (
	"context"

	"github.com/evergreen-ci/todoapi"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DBConnector implements Connector against the environment's database.
// It holds no state of its own beyond the environment and is safe for
// concurrent use.
type DBConnector struct {
	env        todoapi.Environment
	operations metric.Int64Counter
}

// NewDBConnector returns a connector using the environment's database and
// meter.
func NewDBConnector(env todoapi.Environment) (*DBConnector, error) {
	if env == nil {
		return nil, errors.New("environment must not be nil")
	}

	operations, err := env.Meter().Int64Counter(operationsMetric,
		metric.WithDescription("Count of todo store operations by outcome."),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "making '%s' counter", operationsMetric)
	}

	return &DBConnector{env: env, operations: operations}, nil
}

func (dc *DBConnector) finish(ctx context.Context, span trace.Span, op string, err error) {
	result := outcome(err)
	span.SetAttributes(attribute.String(outcomeAttribute, result))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	dc.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(operationAttribute, op),
		attribute.String(outcomeAttribute, result),
	))
}
