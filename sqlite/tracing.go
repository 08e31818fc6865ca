package sqlite

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/snabble/go-treetranslation/sqlite")
