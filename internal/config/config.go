// Package config loads the capability manifest: a YAML file describing the
// capabilities a grammar should be built from, used by tooling that checks
// or prompts without wiring real implementations.
//
// Declared capabilities are structural only. They carry everything grammar
// assembly needs, the name, the input instruction, and the description, but
// invoking one fails with ErrNotExecutable: executable capabilities are
// provided by the embedding program, not by configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tokenrail/internal/tools"
)

// ErrNotExecutable is returned when a manifest-declared capability is
// invoked. Declared capabilities exist for grammar and prompt assembly only.
var ErrNotExecutable = errors.New("declared capability is not executable")

// Manifest is the root of the YAML capability manifest.
type Manifest struct {
	// Capabilities in declaration order; order is prompt order and Action
	// branch priority.
	Capabilities []Declared `yaml:"capabilities"`

	// Logging options for tooling built on the manifest.
	Logging Logging `yaml:"logging"`
}

// Logging carries the manifest's logging options.
type Logging struct {
	Verbose bool `yaml:"verbose"`
}

// Declared is one manifest capability. It satisfies tools.Capability so a
// registry can be built directly from a manifest.
type Declared struct {
	CapName        string `yaml:"name"`
	Instruction    string `yaml:"instruction"`
	CapDescription string `yaml:"description"`
}

// Name implements tools.Capability.
func (d Declared) Name() string { return d.CapName }

// InputInstruction implements tools.Capability.
func (d Declared) InputInstruction() string { return d.Instruction }

// Description implements tools.Capability.
func (d Declared) Description() string { return d.CapDescription }

// Invoke implements tools.Capability and always fails.
func (d Declared) Invoke(ctx context.Context, argument string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotExecutable, d.CapName)
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every declared capability. Names and instructions become
// grammar literals, so they must be non-empty single lines; descriptions
// are prompt-only and may span lines.
func (m *Manifest) Validate() error {
	for i, d := range m.Capabilities {
		if d.CapName == "" {
			return fmt.Errorf("capability %d: name is required", i)
		}
		if strings.ContainsAny(d.CapName, "\n\r") {
			return fmt.Errorf("capability %q: name must be a single line", d.CapName)
		}
		if d.Instruction == "" {
			return fmt.Errorf("capability %q: instruction is required", d.CapName)
		}
		if strings.ContainsAny(d.Instruction, "\n\r") {
			return fmt.Errorf("capability %q: instruction must be a single line", d.CapName)
		}
	}
	return nil
}

// Registry builds a capability registry from the manifest, preserving
// declaration order.
func (m *Manifest) Registry() *tools.Registry {
	reg := tools.NewRegistry()
	for _, d := range m.Capabilities {
		reg.Add(d)
	}
	return reg
}
