package schedule

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// MarkupProvider supplies the portal's schedule container for the
// current session.
type MarkupProvider interface {
	ScheduleMarkup(ctx context.Context) (*goquery.Selection, error)
}

// Fetch pulls the markup from provider and wraps it in a Schedule, the
// markup is not parsed until the Schedule is first read.
func Fetch(ctx context.Context, provider MarkupProvider, opts Options) (*Schedule, error) {
	ctx, span := tracer.Start(ctx, "schedule:Fetch")
	defer span.End()

	markup, err := provider.ScheduleMarkup(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch schedule markup")
		return nil, err
	}
	sched, err := NewSchedule(markup, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create schedule")
		return nil, err
	}
	return sched, nil
}
