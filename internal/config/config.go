// Package config loads the optional per-project Rutaceae configuration
// file, letting a repository pin defaults that would otherwise have to be
// repeated on every CLI invocation.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultFileName is the config file cmd/rutaceae looks for in the
// working directory.
const DefaultFileName = ".rutaceae.yaml"

// Project holds the defaults a .rutaceae.yaml may override. CLI flags
// always take precedence over these values.
type Project struct {
	// TargetTriple pins the LLVM target triple `cc` will assemble for.
	// Empty means "host default" (spec.md §1 treats cross-compilation as
	// out of scope; this repo never resolves a triple itself).
	TargetTriple string `yaml:"target_triple"`

	// Output is the default executable name used by `rutaceae build`
	// when -o is not given.
	Output string `yaml:"output"`

	// Verbose turns on the -v banner/progress output by default.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no .rutaceae.yaml is
// present, matching the original driver's defaults (output name "output",
// host-default target).
func Default() *Project {
	return &Project{Output: "output"}
}

// Load reads and parses path. A missing file is not an error: Default()
// is returned instead, since .rutaceae.yaml is optional.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	proj := Default()
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, err
	}
	return proj, nil
}
