// SPDX-License-Identifier: Apache-2.0

package gen

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/ast"
)

func bindingImage() *ast.Image {
	attr := &ast.Attribute{Type: ast.NewPrimitiveType("Long")}
	attr.Name = ast.Identifier{Name: "length", Scope: "Foo"}
	attr.Readonly = false

	op := &ast.Operation{
		Signatures: []*ast.Signature{
			{
				Return: ast.NewPrimitiveType("Void"),
				Args: []*ast.Argument{
					{Name: "flags", Type: ast.NewPrimitiveType("UnsignedLong")},
				},
			},
		},
	}
	op.Name = ast.Identifier{Name: "reset", Scope: "Foo"}

	foo := &ast.Interface{Members: []ast.Member{attr, op}}
	foo.Name = ast.Identifier{Name: "Foo"}

	bar := &ast.Interface{}
	bar.Name = ast.Identifier{Name: "Bar"}

	return &ast.Image{Definitions: []ast.Definition{foo, bar}}
}

func TestGeneratorIdempotentWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	prefix := t.TempDir() + "/"
	out := &bytes.Buffer{}
	image := bindingImage()
	g := NewGenerator(&Config{}, OptionWithOutput(out))

	written, err := g.Generate(ctx, image, prefix, nil)
	require.Nil(t, err)
	require.Equal(t, []string{prefix + "Foo.cpp", prefix + "Bar.cpp"}, written)
	require.Contains(t, out.String(), "Generating binding implementation: "+prefix+"Foo.cpp")

	// unchanged input, second run writes nothing and stays silent
	out.Reset()
	written, err = g.Generate(ctx, image, prefix, nil)
	require.Nil(t, err)
	require.Empty(t, written)
	require.Empty(t, out.String())

	// changing one member's type forces exactly one write
	foo := image.Definitions[0].(*ast.Interface)
	foo.Members[0].(*ast.Attribute).Type = ast.NewPrimitiveType("Double")
	written, err = g.Generate(ctx, image, prefix, nil)
	require.Nil(t, err)
	require.Equal(t, []string{prefix + "Foo.cpp"}, written)
}

func TestGeneratorRenderedContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	prefix := t.TempDir() + "/"
	cfg := &Config{Entries: map[string]Entry{
		"Foo": {OutputName: "foo_binding", ImplementedAs: "FooNative"},
	}}
	g := NewGenerator(cfg)

	written, err := g.Generate(ctx, bindingImage(), prefix, []string{"Foo"})
	require.Nil(t, err)
	require.Equal(t, []string{prefix + "foo_binding.cpp"}, written)

	content, err := os.ReadFile(prefix + "foo_binding.cpp")
	require.Nil(t, err)
	text := string(content)
	require.Contains(t, text, `#include "bindings/foo_binding.h"`)
	require.Contains(t, text, "int32_t FooNative::length() const {")
	require.Contains(t, text, "void FooNative::set_length(int32_t value) {")
	require.Contains(t, text, "void FooNative::reset(uint32_t flags) {")
	require.Contains(t, text, "impl_->reset(flags);")
	require.False(t, strings.Contains(text, "Bar"))
}

func TestGeneratorSuppressed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	prefix := t.TempDir() + "/"
	cfg := &Config{Entries: map[string]Entry{"Foo": {Suppressed: true}}}
	g := NewGenerator(cfg)

	written, err := g.Generate(ctx, bindingImage(), prefix, nil)
	require.Nil(t, err)
	require.Equal(t, []string{prefix + "Bar.cpp"}, written)
}
