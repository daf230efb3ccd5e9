package core

import (
	"tamoassist-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("tamoassist.lib.scrapers.tamo.core")
