package data

import (
	"fmt"

	"github.com/evergreen-ci/todoapi"
	"go.opentelemetry.io/otel"
)

var packageName = fmt.Sprintf("%s%s", todoapi.PackageName, "/rest/data")

var tracer = otel.GetTracerProvider().Tracer(packageName)

const (
	operationsMetric = "todo.store.operations"

	operationAttribute = "operation"
	outcomeAttribute   = "outcome"
)
