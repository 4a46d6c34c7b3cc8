package styles

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// ParseProfileYAML decodes and validates a single style profile payload.
func ParseProfileYAML(data []byte) (domain.StyleProfile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.StyleProfile{}, errors.New("styles: profile payload is empty")
	}
	var p domain.StyleProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return domain.StyleProfile{}, fmt.Errorf("styles: decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return domain.StyleProfile{}, fmt.Errorf("styles: profile %q: %w", p.ID, err)
	}
	return p, nil
}

// LoadProfileFile reads a YAML file from disk and returns the parsed profile.
func LoadProfileFile(path string) (domain.StyleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StyleProfile{}, fmt.Errorf("styles: read %s: %w", path, err)
	}
	p, err := ParseProfileYAML(data)
	if err != nil {
		return domain.StyleProfile{}, fmt.Errorf("styles: %s: %w", path, err)
	}
	return p, nil
}

// LoadDir scans a directory for *.yaml/*.yml profiles and returns a registry
// built from them, sorted by file name for deterministic registration order.
// A missing directory is treated as "no custom profiles" and yields the
// built-in defaults, simplifying startup.
func LoadDir(dir string) (*Registry, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return Default(), nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("styles: read %s: %w", trimmed, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(trimmed, e.Name()))
		}
	}
	if len(paths) == 0 {
		return Default(), nil
	}
	sort.Strings(paths)

	profiles := make([]domain.StyleProfile, 0, len(paths))
	for _, path := range paths {
		p, err := LoadProfileFile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return NewRegistry(profiles...)
}
