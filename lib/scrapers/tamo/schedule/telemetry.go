package schedule

import (
	"tamoassist-backend/lib/telemetry"

	"go.opentelemetry.io/otel"
)

var tracer = telemetry.Tracer("tamoassist.lib.scrapers.tamo.schedule")

var meter = otel.Meter("tamoassist.lib.scrapers.tamo.schedule")
var lessonsParsedCounter, _ = meter.Int64Counter("tamo.schedule.lessons_parsed")
