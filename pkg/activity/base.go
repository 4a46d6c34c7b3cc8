// Package activity holds the shared plumbing for Temporal activities: workflow
// context extraction, best-effort event emission, and logging that tolerates
// being called outside an activity context.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/ahrav/go-newsdesk/pkg/events"
)

// WorkflowContext is the execution metadata an activity stamps onto the
// events it emits.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	ActivityID string
}

// BaseActivities is embedded by the domain activity structs. It owns the
// event sink and the context helpers they all share.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities wraps an event sink. A nil sink disables emission.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext reads the workflow execution identifiers from the
// activity context. Outside a real activity context activity.GetInfo panics,
// so the recover path substitutes stable placeholder IDs; event idempotency
// keys stay deterministic across test runs because of it.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if recover() != nil {
				wfCtx.WorkflowID = "00000000-0000-0000-0000-000000000000"
				wfCtx.RunID = "local-" + uuid.New().String()[:8]
				wfCtx.ActivityID = "local-activity"
			}
		}()
		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
	}()

	return wfCtx
}

// EmitEventSafe appends an envelope to the sink without ever failing the
// activity. One short retry covers transient sink hiccups; persistent
// failures are logged and dropped.
func (b *BaseActivities) EmitEventSafe(ctx context.Context, envelope events.Envelope, description string) {
	if b.eventSink == nil {
		return
	}

	err := b.eventSink.Append(ctx, envelope)
	if err != nil {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
			SafeLogError(ctx, "Event emission cancelled",
				"event", description, "event_type", envelope.Type)
			return
		}
		err = b.eventSink.Append(ctx, envelope)
	}

	if err != nil {
		SafeLogError(ctx, "Dropping event after retry",
			"event", description,
			"event_type", envelope.Type,
			"error", err)
		return
	}

	SafeLog(ctx, "Event emitted",
		"event", description,
		"event_type", envelope.Type,
		"idempotency_key", envelope.IdempotencyKey)
}

// RecordHeartbeat forwards to the package-level helper.
func (b *BaseActivities) RecordHeartbeat(ctx context.Context, details ...any) {
	RecordHeartbeat(ctx, details...)
}

// SafeLog logs through the activity logger, swallowing the panic that
// activity.GetLogger raises outside an activity context.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() { _ = recover() }()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError is SafeLog at error level.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() { _ = recover() }()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}

// RecordHeartbeat records progress for long-running activities. Safe to call
// outside an activity context, where it is a no-op.
func RecordHeartbeat(ctx context.Context, details ...any) {
	defer func() { _ = recover() }()
	activity.RecordHeartbeat(ctx, details...)
}
