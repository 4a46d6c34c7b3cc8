// Package worker exposes helpers to register workflows/activities with a
// Temporal worker and to initialize their shared dependencies.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-newsdesk/internal/generation"
	"github.com/ahrav/go-newsdesk/internal/judging"
	"github.com/ahrav/go-newsdesk/internal/llm"
	"github.com/ahrav/go-newsdesk/internal/workflow"
	"github.com/ahrav/go-newsdesk/pkg/activity"
	"github.com/ahrav/go-newsdesk/pkg/events"
)

// TaskQueue is the Temporal task queue all run workflows and activities use.
const TaskQueue = "newsdesk-runs"

// RegisterAll registers all workflows and activities with the Temporal worker.
// Must be called once during worker initialization before starting the worker.
func RegisterAll(w sdkworker.Worker, llmClient llm.Client, sink events.EventSink) {
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	base := activity.NewBaseActivities(sink)

	generationActivities := generation.NewActivities(base, llmClient)
	judgingActivities := judging.NewActivities(base, llmClient)

	w.RegisterWorkflow(workflow.RunWorkflow)
	w.RegisterWorkflow(workflow.VariantWorkflow)

	w.RegisterActivity(generationActivities.GenerateDraft)
	w.RegisterActivity(judgingActivities.JudgeDraft)
}
