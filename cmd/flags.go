// flags.go provides shared helpers for commands: service wiring and output
// formatting.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stashhq/stash/internal/config"
	"github.com/stashhq/stash/internal/service"
	"github.com/stashhq/stash/internal/store"
)

// JSON reports whether the user requested JSON output.
func JSON() bool {
	return output == "json"
}

// PrintJSON writes v as indented JSON to stdout.
func PrintJSON(v any) error {
	b, err := store.MarshalJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// openService loads config and opens the catalog. Callers must Close the
// returned service.
func openService() (service.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.DatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	svc, err := service.Open(path, cfg.AuthorName())
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return svc, cfg, nil
}

// parseProperties converts repeated key=value flags into a property bag.
func parseProperties(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid property %q (want key=value)", p)
		}
		props[k] = v
	}
	return props, nil
}

// optional maps "" to nil for optional parent flags.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
