// Package pipeline holds the registry of training pipeline generators.
package pipeline

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/gnnpipe/gnnpipe/userconfig"
)

// ConfigOptions are the user choices config generation starts from.
type ConfigOptions struct {
	Data   string
	Model  string
	Device userconfig.Device
	Output string
}

// Pipeline generates configuration files and training scripts for one kind
// of training pipeline.
type Pipeline interface {
	Name() string
	Description() string
	// GenerateConfig writes a commented configuration file to opts.Output on
	// fs and returns the absolute output path. On error nothing is written.
	GenerateConfig(fs afero.Fs, opts ConfigOptions) (string, error)
	// GenerateScript renders the training script for a parsed configuration
	// document. It performs no file I/O and never mutates userCfg.
	GenerateScript(userCfg map[string]interface{}) (string, error)
}

var registry = make(map[string]Pipeline)

// Register adds a pipeline to the registry. Pipelines register themselves
// from package init, so importing a pipeline package is enough to make it
// available.
func Register(p Pipeline) {
	registry[p.Name()] = p
}

// Get looks up a registered pipeline by name.
func Get(name string) (Pipeline, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown pipeline %q, registered pipelines: %v", name, Names())
	}
	return p, nil
}

// Names returns the registered pipeline names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
