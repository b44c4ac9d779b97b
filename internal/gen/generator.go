// SPDX-License-Identifier: Apache-2.0

package gen

import (
	"context"
	"fmt"
	"io"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/fs"
)

type GeneratorOption func(g *Generator)

func OptionWithTemplater(t Templater) GeneratorOption {
	return func(g *Generator) {
		g.templater = t
	}
}

func OptionWithOutput(w io.Writer) GeneratorOption {
	return func(g *Generator) {
		g.out = w
	}
}

// Generator renders one binding artifact per selected interface and hands it
// to the idempotent writer. Interfaces are visited in declaration order so
// repeated runs produce identical output and identical diagnostics.
type Generator struct {
	config    *Config
	templater Templater
	out       io.Writer
}

func NewGenerator(config *Config, opts ...GeneratorOption) *Generator {
	g := &Generator{
		config:    config,
		templater: NewTemplater(),
		out:       io.Discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders every selected interface under the given output prefix and
// returns the paths that were actually written. Unchanged files are skipped
// silently. An empty only set selects everything that is not suppressed.
func (g *Generator) Generate(ctx context.Context, image *ast.Image, prefix string, only []string) ([]string, error) {
	selected := map[string]bool{}
	for _, name := range only {
		selected[name] = true
	}

	written := []string{}
	for _, iface := range image.Interfaces() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		name := iface.Name.Name
		if len(selected) > 0 && !selected[name] {
			continue
		}
		entry := g.config.Entry(name)
		if entry.Suppressed {
			continue
		}

		content, err := g.templater.Render(iface, entry)
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", name, err)
		}
		stem := entry.OutputName
		if stem == "" {
			stem = name
		}
		path := prefix + stem + ".cpp"
		changed, err := fs.WriteFileIfChanged(path, []byte(content))
		if err != nil {
			return written, err
		}
		if changed {
			fmt.Fprintf(g.out, "Generating binding implementation: %s\n", path)
			written = append(written, path)
		}
	}
	return written, nil
}
