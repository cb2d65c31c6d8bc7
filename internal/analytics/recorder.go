// Package analytics records workflow events to the Postgres event log and,
// when configured, publishes them to a Redis Stream for downstream
// consumers. Recording is best effort: failures are logged, never surfaced
// to the workflow.
package analytics

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"ideaforge.app/evaluator/common/id"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/store"
)

type Recorder struct {
	events store.EventLogStore
	client *redis.Client // nil when no stream is configured
	stream string
}

func NewRecorder(events store.EventLogStore, client *redis.Client, stream string) *Recorder {
	return &Recorder{
		events: events,
		client: client,
		stream: stream,
	}
}

func (r *Recorder) Track(ctx context.Context, ideaID int64, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.WarnContext(ctx, "failed to marshal analytics payload", "event", event, "error", err)
		data = nil
	}

	logEvent := &model.WorkflowEvent{
		ID:        id.New(),
		IdeaID:    ideaID,
		EventType: event,
		Payload:   data,
	}
	if err := r.events.Append(ctx, logEvent); err != nil {
		slog.WarnContext(ctx, "failed to append workflow event", "event", event, "idea_id", ideaID, "error", err)
	}

	if r.client == nil {
		return
	}

	fields := map[string]any{
		"event_id":   logEvent.ID,
		"idea_id":    ideaID,
		"event_type": event,
	}
	if len(data) > 0 {
		fields["payload"] = string(data)
	}
	if span := trace.SpanContextFromContext(ctx); span.HasTraceID() {
		fields["trace_id"] = span.TraceID().String()
	}

	if err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: fields,
	}).Err(); err != nil {
		slog.WarnContext(ctx, "failed to publish workflow event", "event", event, "idea_id", ideaID, "error", err)
		return
	}

	slog.DebugContext(ctx, "workflow event published", "event", event, "idea_id", ideaID, "event_id", logEvent.ID)
}

func (r *Recorder) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
