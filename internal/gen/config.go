// SPDX-License-Identifier: Apache-2.0

// Package gen drives binding generation: it merges the external descriptor
// with the compiled image, renders one artifact per selected interface, and
// writes each artifact only when its content actually changed.
package gen

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

// Entry holds the generation flags for one interface. The zero value is what
// an interface gets when the descriptor does not mention it.
type Entry struct {
	// Suppressed excludes the interface from generation entirely.
	Suppressed bool `yaml:"suppressed" toml:"suppressed"`
	// OutputName overrides the file stem of the generated artifact. Defaults
	// to the interface name.
	OutputName string `yaml:"output-name" toml:"output-name"`
	// ImplementedAs overrides the name of the binding class. Defaults to the
	// interface name with a Binding suffix.
	ImplementedAs string `yaml:"implemented-as" toml:"implemented-as"`
}

// Config is the parsed descriptor, keyed by interface name. Every key must
// name an interface in the image it was loaded against.
type Config struct {
	Entries map[string]Entry `yaml:"entries" toml:"entries"`
}

// Entry returns the descriptor entry for the named interface, or the zero
// entry when the descriptor does not mention it.
func (c *Config) Entry(name string) Entry {
	if c == nil || c.Entries == nil {
		return Entry{}
	}
	return c.Entries[name]
}

// LoadConfig reads and decodes the descriptor file and cross-checks it
// against the image. The file format follows the file extension.
func LoadConfig(ctx context.Context, f idl.File, image *ast.Image) (*Config, error) {
	body, err := f.Body(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close(ctx)
	}()
	content, err := readAll(ctx, body)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch f.Kind(ctx) {
	case idl.FileKindConfigYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, exc.Wrap(exc.Location{URI: f.Path(ctx)}, exc.CodeConfigurationMismatch, err)
		}
	case idl.FileKindConfigTOML:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, exc.Wrap(exc.Location{URI: f.Path(ctx)}, exc.CodeConfigurationMismatch, err)
		}
	default:
		return nil, exc.New(exc.Location{URI: f.Path(ctx)}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("cannot read a configuration descriptor from a %s file", f.Kind(ctx)))
	}

	for name := range cfg.Entries {
		if _, ok := image.LookupInterface(name); !ok {
			return nil, exc.New(exc.Location{URI: f.Path(ctx)}, exc.CodeConfigurationMismatch, fmt.Sprintf("descriptor references unknown interface %s", name))
		}
	}
	return cfg, nil
}

func readAll(ctx context.Context, body idl.FileBody) ([]byte, error) {
	var out []byte
	for {
		chunk, err := body.Read(ctx, 4096)
		out = append(out, chunk...)
		if err != nil {
			if errors.Is(err, io.EOF) || isEOFCode(err) {
				return out, nil
			}
			return nil, err
		}
		if len(chunk) == 0 {
			return out, nil
		}
	}
}

func isEOFCode(err error) bool {
	var e exc.Exception
	if errors.As(err, &e) {
		return e.Code() == exc.CodeEOF
	}
	return false
}
