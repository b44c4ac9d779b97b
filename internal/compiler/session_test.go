// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

func finishSnippets(t *testing.T, snippets ...string) (*ast.Image, error) {
	t.Helper()
	ctx := context.Background()
	session := NewSession()
	for i, snippet := range snippets {
		f := fs.NewFileString(fmt.Sprintf("/test%d.idl", i), snippet, idl.FileKindWebIDL)
		if err := session.Parse(ctx, f); err != nil {
			return nil, err
		}
	}
	return session.Finish(ctx)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.NotNil(t, err)
	var e exc.Exception
	require.ErrorAs(t, err, &e)
	require.Equal(t, code, e.Code())
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	session := NewSession()
	require.Equal(t, SessionStateFresh, session.State())

	f := fs.NewFileString("/a.idl", "interface A {};", idl.FileKindWebIDL)
	require.Nil(t, session.Parse(ctx, f))
	require.Equal(t, SessionStateParsing, session.State())

	image, err := session.Finish(ctx)
	require.Nil(t, err)
	require.Len(t, image.Definitions, 1)
	require.Equal(t, SessionStateFinished, session.State())

	// no Finished -> Parsing transition
	err = session.Parse(ctx, f)
	requireCode(t, err, exc.CodeSessionState)
	_, err = session.Finish(ctx)
	requireCode(t, err, exc.CodeSessionState)

	session.Reset()
	require.Equal(t, SessionStateFresh, session.State())
	require.Nil(t, session.Parse(ctx, f))
	image, err = session.Finish(ctx)
	require.Nil(t, err)
	require.Len(t, image.Definitions, 1)
}

func TestSessionFailedRequiresReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	session := NewSession()
	bad := fs.NewFileString("/bad.idl", "interface {", idl.FileKindWebIDL)
	err := session.Parse(ctx, bad)
	require.NotNil(t, err)
	require.Equal(t, SessionStateFailed, session.State())

	good := fs.NewFileString("/good.idl", "interface A {};", idl.FileKindWebIDL)
	err = session.Parse(ctx, good)
	requireCode(t, err, exc.CodeSessionState)

	session.Reset()
	require.Nil(t, session.Parse(ctx, good))
}

func TestSessionDuplicateIdentifier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	session := NewSession()
	f := fs.NewFileString("/a.idl", "interface A {};", idl.FileKindWebIDL)
	require.Nil(t, session.Parse(ctx, f))
	// registration is fail-fast, before any linking happens
	dup := fs.NewFileString("/b.idl", "interface A {};", idl.FileKindWebIDL)
	err := session.Parse(ctx, dup)
	requireCode(t, err, exc.CodeDuplicateIdentifier)
	require.Equal(t, SessionStateFailed, session.State())
}

func TestSessionDuplicateMember(t *testing.T) {
	t.Parallel()

	_, err := finishSnippets(t, "interface A { attribute long x; attribute long x; };")
	requireCode(t, err, exc.CodeDuplicateIdentifier)
}

func TestSessionFinishEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	session := NewSession()
	image, err := session.Finish(ctx)
	require.Nil(t, err)
	require.Empty(t, image.Definitions)
}

func TestSessionLoadDecodedImage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, err := finishSnippets(t, "interface Node { attribute DOMString name; };")
	require.Nil(t, err)
	encoded := ast.EncodeImage(first)
	decoded, err := ast.DecodeImage(encoded)
	require.Nil(t, err)

	// cached definitions resolve together with newly parsed text
	session := NewSession()
	require.Nil(t, session.Load(ctx, "/cache.widlbin", decoded.Definitions))
	f := fs.NewFileString("/extra.idl", "interface Doc { attribute Node root; };", idl.FileKindWebIDL)
	require.Nil(t, session.Parse(ctx, f))
	image, err := session.Finish(ctx)
	require.Nil(t, err)
	require.Len(t, image.Definitions, 2)
	doc, ok := image.LookupInterface("Doc")
	require.True(t, ok)
	require.Equal(t, "Node", doc.Members[0].(*ast.Attribute).Type.Name)
}
