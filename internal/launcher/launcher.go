// Package launcher starts production runs on Temporal. It owns the pre-run
// validation that must happen before any workflow exists: style resolution
// against the registry and run request construction. An unknown style
// identifier fails the whole run here, before any variant work begins.
package launcher

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/styles"
	"github.com/ahrav/go-newsdesk/internal/worker"
	"github.com/ahrav/go-newsdesk/internal/workflow"
)

// RunWorkflowID builds the deterministic workflow identifier for a run.
func RunWorkflowID(runID string) string { return "run-" + runID }

// Launcher starts run workflows with resolved styles and engine config.
type Launcher struct {
	temporal client.Client
	registry *styles.Registry
	config   domain.EngineConfig
}

// New creates a launcher. A nil registry falls back to the built-in styles;
// a zero config falls back to the engine defaults.
func New(tc client.Client, registry *styles.Registry, config domain.EngineConfig) *Launcher {
	if registry == nil {
		registry = styles.Default()
	}
	if config == (domain.EngineConfig{}) {
		config = domain.DefaultEngineConfig()
	}
	return &Launcher{temporal: tc, registry: registry, config: config}
}

// StartRun validates the request, resolves styles, and starts the run
// workflow without waiting for completion. Empty styleIDs selects every
// registered style in registry order.
func (l *Launcher) StartRun(
	ctx context.Context,
	sourceText, sourceURL string,
	styleIDs []string,
	requestedBy domain.Principal,
) (*domain.RunRequest, client.WorkflowRun, error) {
	if len(styleIDs) == 0 {
		styleIDs = l.registry.IDs()
	}

	// Unknown styles fail here, before the workflow starts.
	profiles, err := l.registry.ResolveAll(styleIDs)
	if err != nil {
		return nil, nil, err
	}

	req, err := domain.NewRunRequest(sourceText, sourceURL, styleIDs, requestedBy)
	if err != nil {
		return nil, nil, err
	}

	input := domain.RunInput{
		Request: *req,
		Styles:  profiles,
		Config:  l.config,
	}

	run, err := l.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        RunWorkflowID(req.ID),
		TaskQueue: worker.TaskQueue,
	}, workflow.RunWorkflow, input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start run workflow: %w", err)
	}

	return req, run, nil
}

// Run starts a run and blocks until the aggregated result is available.
func (l *Launcher) Run(
	ctx context.Context,
	sourceText, sourceURL string,
	styleIDs []string,
	requestedBy domain.Principal,
) (*domain.RunResult, error) {
	_, run, err := l.StartRun(ctx, sourceText, sourceURL, styleIDs, requestedBy)
	if err != nil {
		return nil, err
	}

	var result domain.RunResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("run workflow failed: %w", err)
	}
	return &result, nil
}

// Result fetches the result of a previously started run, blocking until the
// workflow completes.
func (l *Launcher) Result(ctx context.Context, runID string) (*domain.RunResult, error) {
	run := l.temporal.GetWorkflow(ctx, RunWorkflowID(runID), "")

	var result domain.RunResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch run result: %w", err)
	}
	return &result, nil
}
