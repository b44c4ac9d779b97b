// SPDX-License-Identifier: Apache-2.0

package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

func testImage(names ...string) *ast.Image {
	img := &ast.Image{}
	for _, name := range names {
		iface := &ast.Interface{}
		iface.Name = ast.Identifier{Name: name}
		img.Definitions = append(img.Definitions, iface)
	}
	return img
}

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	descriptor := `entries:
  Foo:
    suppressed: true
  Bar:
    output-name: bar_binding
    implemented-as: BarNative
`
	f := fs.NewFileString("/gen.yaml", descriptor, idl.FileKindConfigYAML)
	cfg, err := LoadConfig(ctx, f, testImage("Foo", "Bar"))
	require.Nil(t, err)
	require.True(t, cfg.Entry("Foo").Suppressed)
	require.Equal(t, "bar_binding", cfg.Entry("Bar").OutputName)
	require.Equal(t, "BarNative", cfg.Entry("Bar").ImplementedAs)
	require.Equal(t, Entry{}, cfg.Entry("Missing"))
}

func TestLoadConfigTOML(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	descriptor := `[entries.Foo]
output-name = "foo_binding"
`
	f := fs.NewFileString("/gen.toml", descriptor, idl.FileKindConfigTOML)
	cfg, err := LoadConfig(ctx, f, testImage("Foo"))
	require.Nil(t, err)
	require.Equal(t, "foo_binding", cfg.Entry("Foo").OutputName)
}

func TestLoadConfigUnknownInterface(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	descriptor := "entries:\n  Ghost: {}\n"
	f := fs.NewFileString("/gen.yaml", descriptor, idl.FileKindConfigYAML)
	_, err := LoadConfig(ctx, f, testImage("Foo"))
	require.NotNil(t, err)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeConfigurationMismatch, e.Code())
}

func TestLoadConfigWrongKind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := fs.NewFileString("/gen.idl", "entries: {}", idl.FileKindWebIDL)
	_, err := LoadConfig(ctx, f, testImage())
	require.NotNil(t, err)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeUnsupportedFileFormat, e.Code())
}
