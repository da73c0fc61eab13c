package notify

import (
	"context"
	"log"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

// Sink receives committed transition events. Sinks are best-effort: a sink
// that fails must log and move on, never fail the originating operation.
type Sink interface {
	Notify(ctx context.Context, ev domain.Event)
}

// Fanout delivers each event to every sink in order.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, ev domain.Event) {
	for _, sink := range f {
		sink.Notify(ctx, ev)
	}
}

// LogSink writes events to the process log.
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, ev domain.Event) {
	log.Printf("[event] type=%s project_id=%d account=%s amount=%d success=%t",
		ev.Type, ev.ProjectID, ev.Account, ev.Amount, ev.Success)
}
