// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

func parseSnippet(t *testing.T, input string) ([]ast.Definition, []exc.Exception) {
	t.Helper()
	ctx := context.Background()
	f := fs.NewFileString("/test.idl", input, idl.FileKindWebIDL)
	rep := exc.NewReporter(nil)
	lexer := NewLexerWebIDL(rep)
	lexerFile, err := lexer.Lex(ctx, f)
	require.Nil(t, err)
	parser := NewParserWebIDL(rep)
	tokens, err := parser.PrepareParse(ctx, lexerFile)
	require.Nil(t, err)
	return tokens.parse(), rep.Reported()
}

func TestParserWebIDL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		check func(t *testing.T, defs []ast.Definition)
	}{
		{
			name:  "interface with inheritance",
			input: "interface Foo : Bar {};",
			check: func(t *testing.T, defs []ast.Definition) {
				require.Len(t, defs, 1)
				iface := defs[0].(*ast.Interface)
				require.Equal(t, "Foo", iface.Name.Name)
				require.Equal(t, "::Foo", iface.Name.QName())
				require.Equal(t, "Bar", iface.Inherits)
				require.False(t, iface.CallbackInterface)
			},
		},
		{
			name:  "callback interface",
			input: "callback interface Listener { void handle(); };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				require.True(t, iface.CallbackInterface)
				require.Len(t, iface.Members, 1)
			},
		},
		{
			name:  "attribute flavors",
			input: "interface Foo { attribute long a; readonly attribute long b; static attribute long c; static readonly attribute long d; };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				require.Len(t, iface.Members, 4)
				a := iface.Members[0].(*ast.Attribute)
				require.False(t, a.Readonly)
				require.False(t, a.Static)
				b := iface.Members[1].(*ast.Attribute)
				require.True(t, b.Readonly)
				require.False(t, b.Static)
				c := iface.Members[2].(*ast.Attribute)
				require.True(t, c.Static)
				d := iface.Members[3].(*ast.Attribute)
				require.True(t, d.Static)
				require.True(t, d.Readonly)
				require.Equal(t, "::Foo::d", d.Name.QName())
			},
		},
		{
			name:  "overloads accumulate",
			input: "interface Foo { void basic(); void basic(long arg1); };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				require.Len(t, iface.Members, 1)
				op := iface.Members[0].(*ast.Operation)
				require.Len(t, op.Signatures, 2)
				require.Equal(t, "Void", op.Signatures[0].Return.Name)
				require.Empty(t, op.Signatures[0].Args)
				require.Len(t, op.Signatures[1].Args, 1)
				require.Equal(t, "arg1", op.Signatures[1].Args[0].Name)
				require.Equal(t, "Long", op.Signatures[1].Args[0].Type.Name)
			},
		},
		{
			name:  "operation qualifiers",
			input: "interface Foo { getter deleter object item(unsigned long index); };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				op := iface.Members[0].(*ast.Operation)
				require.True(t, op.HasQualifier("getter"))
				require.True(t, op.HasQualifier("deleter"))
				require.False(t, op.HasQualifier("setter"))
				require.Equal(t, "UnsignedLong", op.Signatures[0].Args[0].Type.Name)
			},
		},
		{
			name:  "multi word primitives",
			input: "interface Foo { attribute unsigned long long a; attribute long long b; attribute unrestricted double c; };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				require.Equal(t, "UnsignedLongLong", iface.Members[0].(*ast.Attribute).Type.Name)
				require.Equal(t, "LongLong", iface.Members[1].(*ast.Attribute).Type.Name)
				require.Equal(t, "UnrestrictedDouble", iface.Members[2].(*ast.Attribute).Type.Name)
			},
		},
		{
			name:  "constant",
			input: "interface Foo { const long X = 5; const boolean B = true; };",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				x := iface.Members[0].(*ast.Constant)
				require.Equal(t, "Long", x.Type.Name)
				require.Equal(t, "5", x.Value)
				b := iface.Members[1].(*ast.Constant)
				require.Equal(t, "true", b.Value)
			},
		},
		{
			name:  "dictionary",
			input: `dictionary Options { required DOMString name; long count = 1; };`,
			check: func(t *testing.T, defs []ast.Definition) {
				dict := defs[0].(*ast.Dictionary)
				require.Len(t, dict.Members, 2)
				require.True(t, dict.Members[0].Required)
				require.Equal(t, "String", dict.Members[0].Type.Name)
				require.Equal(t, "1", dict.Members[1].Default)
			},
		},
		{
			name:  "typedef",
			input: "typedef unsigned long mylong;",
			check: func(t *testing.T, defs []ast.Definition) {
				td := defs[0].(*ast.Typedef)
				require.Equal(t, "mylong", td.Name.Name)
				require.Equal(t, "UnsignedLong", td.Type.Name)
			},
		},
		{
			name:  "enum",
			input: `enum Mode { "open", "closed" };`,
			check: func(t *testing.T, defs []ast.Definition) {
				enum := defs[0].(*ast.Enum)
				require.Equal(t, []string{"open", "closed"}, enum.Values)
			},
		},
		{
			name:  "callback function",
			input: "callback Handler = void (long code, DOMString reason);",
			check: func(t *testing.T, defs []ast.Definition) {
				cb := defs[0].(*ast.Callback)
				require.Equal(t, "Handler", cb.Name.Name)
				require.Equal(t, "Void", cb.Return.Name)
				require.Len(t, cb.Args, 2)
			},
		},
		{
			name:  "extended attribute shapes",
			input: "[Global, PutForwards=name, LegacyFactoryFunction(DOMString label), Exposed=(Window,Worker)] interface Foo {};",
			check: func(t *testing.T, defs []ast.Definition) {
				iface := defs[0].(*ast.Interface)
				require.True(t, iface.Global)
				attrs := iface.Attrs()
				require.Equal(t, ast.ExtendedAttributeKindFlag, attrs.Get("Global").Kind)
				pf := attrs.Get("PutForwards")
				require.Equal(t, ast.ExtendedAttributeKindIdent, pf.Kind)
				require.Equal(t, "name", pf.Value)
				ff := attrs.Get("LegacyFactoryFunction")
				require.Equal(t, ast.ExtendedAttributeKindArgList, ff.Kind)
				require.Len(t, ff.Args, 1)
				exposed := attrs.Get("Exposed")
				require.Equal(t, ast.ExtendedAttributeKindIdentList, exposed.Kind)
				require.Equal(t, []string{"Window", "Worker"}, exposed.Values)
			},
		},
		{
			name:  "complex types",
			input: "interface Foo { void run(sequence<long> xs, (Node or DOMString) target, optional long depth = 1, long... rest); };",
			check: func(t *testing.T, defs []ast.Definition) {
				op := defs[0].(*ast.Interface).Members[0].(*ast.Operation)
				args := op.Signatures[0].Args
				require.Len(t, args, 4)
				require.Equal(t, ast.TypeKindSequence, args[0].Type.Kind)
				require.Equal(t, "Long", args[0].Type.Inner.Name)
				require.Equal(t, ast.TypeKindUnion, args[1].Type.Kind)
				require.Len(t, args[1].Type.Options, 2)
				require.True(t, args[2].Optional)
				require.Equal(t, "1", args[2].Default)
				require.True(t, args[3].Variadic)
			},
		},
		{
			name:  "nullable attribute",
			input: "interface Foo { attribute long? maybe; };",
			check: func(t *testing.T, defs []ast.Definition) {
				a := defs[0].(*ast.Interface).Members[0].(*ast.Attribute)
				require.True(t, a.Type.IsNullable())
				require.Equal(t, "Long", a.Type.Inner.Name)
			},
		},
		{
			name:  "constructor member",
			input: "interface Foo { constructor(long x); };",
			check: func(t *testing.T, defs []ast.Definition) {
				op := defs[0].(*ast.Interface).Members[0].(*ast.Operation)
				require.Equal(t, "constructor", op.Name.Name)
				require.Equal(t, "Void", op.Signatures[0].Return.Name)
			},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			defs, reported := parseSnippet(t, testCase.input)
			require.Empty(t, reported)
			require.NotNil(t, defs)
			testCase.check(t, defs)
		})
	}
}

func TestParserWebIDLErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		input        string
		expectedCode string
	}{
		{
			name:         "duplicate qualifier adjacent",
			input:        "interface Foo { getter getter byte f(unsigned long index); };",
			expectedCode: exc.CodeDuplicateQualifier,
		},
		{
			name:         "duplicate qualifier separated",
			input:        "interface Foo { getter deleter getter byte f(unsigned long index); };",
			expectedCode: exc.CodeDuplicateQualifier,
		},
		{
			name:         "double nullable",
			input:        "interface Foo { attribute long?? x; };",
			expectedCode: exc.CodeInvalidNullableNesting,
		},
		{
			name:         "missing semicolon",
			input:        "interface Foo {}",
			expectedCode: exc.CodeUnexpectedEOF,
		},
		{
			name:         "union of one",
			input:        "interface Foo { attribute (long) x; };",
			expectedCode: exc.CodeSyntaxError,
		},
		{
			name:         "duplicate enum value",
			input:        `enum Mode { "open", "open" };`,
			expectedCode: exc.CodeDuplicateIdentifier,
		},
		{
			name:         "variadic must be last",
			input:        "interface Foo { void f(long... rest, long tail); };",
			expectedCode: exc.CodeSyntaxError,
		},
		{
			name:         "unknown multi word type",
			input:        "interface Foo { attribute unsigned Node x; };",
			expectedCode: exc.CodeSyntaxError,
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			defs, reported := parseSnippet(t, testCase.input)
			require.Nil(t, defs)
			require.NotEmpty(t, reported)
			require.Equal(t, testCase.expectedCode, reported[0].Code())
		})
	}
}
