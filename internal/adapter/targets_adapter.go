package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "mutest.dev/pkg/mutest/internal/model"
)

// TargetsAdapter reads the list of files to mutate from a YAML document:
//
//	targets:
//	  - path: internal/calc/calc.go
//	    methods: [Add, Calculator.Accumulate]
type TargetsAdapter interface {
	Load(ctx context.Context, path m.Path) ([]m.Target, error)
}

type targetsFile struct {
	Targets []m.Target `yaml:"targets"`
}

// YAMLTargetsAdapter implements TargetsAdapter.
type YAMLTargetsAdapter struct{}

// NewYAMLTargetsAdapter constructs a YAMLTargetsAdapter.
func NewYAMLTargetsAdapter() *YAMLTargetsAdapter {
	return &YAMLTargetsAdapter{}
}

// Load implements TargetsAdapter. Relative target paths are resolved against
// the directory of the targets file.
func (a *YAMLTargetsAdapter) Load(ctx context.Context, path m.Path) ([]m.Target, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - the targets file is chosen by the mutest operator
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, m.NewConfigError("targets", err)
	}

	var doc targetsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, m.NewConfigError("targets", fmt.Errorf("failed to parse %s: %w", path, err))
	}

	base := filepath.Dir(string(path))

	for i, target := range doc.Targets {
		if target.Path == "" {
			return nil, m.NewConfigError("targets", fmt.Errorf("target %d has no path", i))
		}

		if !filepath.IsAbs(string(target.Path)) {
			doc.Targets[i].Path = m.Path(filepath.Join(base, string(target.Path)))
		}
	}

	if len(doc.Targets) == 0 {
		return nil, m.NewConfigError("targets", errors.New("no targets listed"))
	}

	return doc.Targets, nil
}
