// Package main is the newsdesk CLI: it reads a police report text, runs the
// full generation pipeline over the requested styles, prints the rendered
// result, and optionally exports the article bundle to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/launcher"
	"github.com/ahrav/go-newsdesk/internal/presentation"
	"github.com/ahrav/go-newsdesk/internal/styles"
)

var (
	inputPath       = flag.String("input", "input.txt", "Path to the source text, or '-' for stdin")
	sourceURL       = flag.String("url", "", "URL of the original release, for attribution")
	styleList       = flag.String("styles", "", "Comma-separated style IDs (default: all registered)")
	stylesDir       = flag.String("styles-dir", "", "Directory of style profile YAML files (default: built-in styles)")
	outDir          = flag.String("out", "", "Directory to export the article bundle to")
	temporalAddress = flag.String("temporal-address", client.DefaultHostPort, "Temporal frontend address")
	requestedBy     = flag.String("by", "", "User requesting the run")
)

func main() {
	flag.Parse()
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	sourceText, err := readSource(*inputPath)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(*stylesDir)
	if err != nil {
		return err
	}

	var styleIDs []string
	if *styleList != "" {
		for _, id := range strings.Split(*styleList, ",") {
			if id = strings.TrimSpace(id); id != "" {
				styleIDs = append(styleIDs, id)
			}
		}
	}

	principal := domain.Principal{Type: domain.PrincipalService, ID: "cli"}
	if *requestedBy != "" {
		principal = domain.Principal{Type: domain.PrincipalUser, ID: *requestedBy}
	}

	tc, err := client.Dial(client.Options{HostPort: *temporalAddress})
	if err != nil {
		return fmt.Errorf("failed to connect to Temporal: %w", err)
	}
	defer tc.Close()

	l := launcher.New(tc, registry, domain.DefaultEngineConfig())
	result, err := l.Run(ctx, sourceText, *sourceURL, styleIDs, principal)
	if err != nil {
		return err
	}

	fmt.Print(presentation.RenderRun(result))

	if *outDir != "" {
		paths, err := presentation.ExportRunBundle(*outDir, result)
		if err != nil {
			return fmt.Errorf("failed to export bundle: %w", err)
		}
		fmt.Printf("\nExported %d files to %s\n", len(paths), *outDir)
	}
	return nil
}

func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source text: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("source text is empty")
	}
	return text, nil
}

func loadRegistry(dir string) (*styles.Registry, error) {
	if dir == "" {
		return styles.Default(), nil
	}
	registry, err := styles.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load style profiles from %s: %w", dir, err)
	}
	return registry, nil
}
