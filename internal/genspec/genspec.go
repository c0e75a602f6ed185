// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genspec loads a generation run described in a YAML file and folds
// it into the command-line flag set. Explicit flags always win over
// spec-file values.
package genspec

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Spec mirrors the generate command's inputs.
type Spec struct {
	Args      []string `yaml:"args"`
	CSV       bool     `yaml:"csv"`
	JSON      bool     `yaml:"json"`
	YAML      bool     `yaml:"yaml"`
	FileInput bool     `yaml:"fileinput"`
	Database  bool     `yaml:"database"`
	Server    bool     `yaml:"server"`
	Logging   bool     `yaml:"logging"`
	Output    string   `yaml:"output"`
}

// Load decodes a generation spec from path.
func Load(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spec: %w", err)
	}
	defer f.Close()

	var spec Spec
	if err := yaml.NewDecoder(f).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return &spec, nil
}

// Apply copies spec values onto every flag the user did not set explicitly.
func Apply(flags *pflag.FlagSet, spec *Spec) error {
	if spec == nil {
		return nil
	}

	set := func(name, value string) error {
		if flags.Changed(name) {
			return nil
		}
		if f := flags.Lookup(name); f == nil {
			return nil
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("apply spec value for --%s: %w", name, err)
		}
		return nil
	}

	// Setting a flag marks it changed, so the repeated token appends have
	// to check once up front rather than through set.
	if !flags.Changed("args") && flags.Lookup("args") != nil {
		for _, tok := range spec.Args {
			if err := flags.Set("args", tok); err != nil {
				return fmt.Errorf("apply spec value for --args: %w", err)
			}
		}
	}
	bools := map[string]bool{
		"csv":       spec.CSV,
		"json":      spec.JSON,
		"yaml":      spec.YAML,
		"fileinput": spec.FileInput,
		"database":  spec.Database,
		"server":    spec.Server,
		"logging":   spec.Logging,
	}
	for name, val := range bools {
		if !val {
			continue
		}
		if err := set(name, strconv.FormatBool(val)); err != nil {
			return err
		}
	}
	if spec.Output != "" {
		if err := set("output", spec.Output); err != nil {
			return err
		}
	}
	return nil
}
