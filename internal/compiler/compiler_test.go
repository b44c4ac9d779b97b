// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/fs"
)

func TestCompilerCompile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "a.idl"), []byte("interface A { attribute B other; };"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "b.idl"), []byte("interface B {};"), 0o644))

	lfs, err := fs.NewFileSystemLocal(dir)
	require.Nil(t, err)
	c, err := New(OptionWithFS(lfs))
	require.Nil(t, err)

	out, err := c.Compile(ctx, &CompileRequest{Files: []string{"/a.idl", "/b.idl"}})
	require.Nil(t, err)
	require.Len(t, out.Image.Definitions, 2)
	// definitions follow the argument order
	require.Equal(t, "A", out.Image.Definitions[0].Ident().Name)
	require.Equal(t, "B", out.Image.Definitions[1].Ident().Name)
	a, ok := out.Image.LookupInterface("A")
	require.True(t, ok)
	require.Equal(t, ast.DefinitionKindInterface, a.Members[0].(*ast.Attribute).Type.ResolvedKind)
}

func TestCompilerCachedImageInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "node.idl"), []byte("interface Node {};"), 0o644))

	lfs, err := fs.NewFileSystemLocal(dir)
	require.Nil(t, err)
	c, err := New(OptionWithFS(lfs))
	require.Nil(t, err)
	out, err := c.Compile(ctx, &CompileRequest{Files: []string{"/node.idl"}})
	require.Nil(t, err)

	require.Nil(t, os.WriteFile(filepath.Join(dir, "cache.widlbin"), ast.EncodeImage(out.Image), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "doc.idl"), []byte("interface Doc { attribute Node root; };"), 0o644))

	c2, err := New(OptionWithFS(lfs))
	require.Nil(t, err)
	out2, err := c2.Compile(ctx, &CompileRequest{Files: []string{"/cache.widlbin", "/doc.idl"}})
	require.Nil(t, err)
	require.Len(t, out2.Image.Definitions, 2)
	doc, ok := out2.Image.LookupInterface("Doc")
	require.True(t, ok)
	require.Equal(t, "Node", doc.Members[0].(*ast.Attribute).Type.Name)
}

func TestCompilerUnsupportedFormat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "gen.yaml"), []byte("entries: {}"), 0o644))

	lfs, err := fs.NewFileSystemLocal(dir)
	require.Nil(t, err)
	c, err := New(OptionWithFS(lfs))
	require.Nil(t, err)
	_, err = c.Compile(ctx, &CompileRequest{Files: []string{"/gen.yaml"}})
	require.NotNil(t, err)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, exc.CodeUnsupportedFileFormat, e.Code())
}

func TestCompilerSyntaxErrorPropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "bad.idl"), []byte("interface {"), 0o644))

	lfs, err := fs.NewFileSystemLocal(dir)
	require.Nil(t, err)
	c, err := New(OptionWithFS(lfs))
	require.Nil(t, err)
	_, err = c.Compile(ctx, &CompileRequest{Files: []string{"/bad.idl"}})
	require.NotNil(t, err)
	var me MultiException
	require.ErrorAs(t, err, &me)
	require.Equal(t, exc.CodeSyntaxError, me[0].Code())
}
