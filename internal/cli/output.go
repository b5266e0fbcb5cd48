package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/blueprint/pkg/errors"
)

// writeArtifacts writes every artifact into dir, creating it if needed, in
// name order. It returns the written paths.
func writeArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(artifacts))
	for _, name := range slices.Sorted(maps.Keys(artifacts)) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// printFiles lists written paths, collapsing long lists.
func printFiles(paths []string) {
	const maxListed = 12
	for i, p := range paths {
		if i == maxListed {
			printDetail("... and %d more", len(paths)-maxListed)
			return
		}
		printFile(p)
	}
}
