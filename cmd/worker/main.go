// Package main runs the Temporal worker hosting the run workflows and the
// generation/judgment activities.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-newsdesk/internal/worker"
)

var (
	temporalAddress = flag.String("temporal-address", client.DefaultHostPort, "Temporal frontend address")
	namespace       = flag.String("namespace", client.DefaultNamespace, "Temporal namespace")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tc, err := client.Dial(client.Options{
		HostPort:  *temporalAddress,
		Namespace: *namespace,
	})
	if err != nil {
		logger.Error("failed to connect to Temporal", "error", err)
		os.Exit(1)
	}
	defer tc.Close()

	llmClient, err := worker.InitializeLLMClient(context.Background(), nil)
	if err != nil {
		logger.Error("failed to initialize LLM client", "error", err)
		os.Exit(1)
	}

	w := sdkworker.New(tc, worker.TaskQueue, sdkworker.Options{})
	worker.RegisterAll(w, llmClient, nil)

	logger.Info("worker starting", "task_queue", worker.TaskQueue, "temporal", *temporalAddress)
	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
