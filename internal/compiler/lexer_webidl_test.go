// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

type lexerExpectation struct {
	Type  idl.TokenType
	Value string
}

func TestLexerWebIDL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []lexerExpectation
	}{
		{
			name:  "empty interface",
			input: "interface Foo {};",
			expected: []lexerExpectation{
				{idl.TokenTypeKeywordInterface, "interface"},
				{idl.TokenTypeIdentifier, "Foo"},
				{idl.TokenTypeCurlyOpen, "{"},
				{idl.TokenTypeCurlyClose, "}"},
				{idl.TokenTypeSemicolon, ";"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "numbers",
			input: "0 0x1F 1.5 1.5e-3",
			expected: []lexerExpectation{
				{idl.TokenTypeIntegerDecimal, "0"},
				{idl.TokenTypeIntegerHex, "0x1F"},
				{idl.TokenTypeFloatDecimal, "1.5"},
				{idl.TokenTypeFloatDecimal, "1.5e-3"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "negative constant",
			input: "const long X = -5;",
			expected: []lexerExpectation{
				{idl.TokenTypeKeywordConst, "const"},
				{idl.TokenTypeIdentifier, "long"},
				{idl.TokenTypeIdentifier, "X"},
				{idl.TokenTypeEqual, "="},
				{idl.TokenTypeMinus, "-"},
				{idl.TokenTypeIntegerDecimal, "5"},
				{idl.TokenTypeSemicolon, ";"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "text literal",
			input: `"hello"`,
			expected: []lexerExpectation{
				{idl.TokenTypeText, "hello"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "line comment",
			input: "// note\n",
			expected: []lexerExpectation{
				{idl.TokenTypeComment, " note"},
				{idl.TokenTypeNewline, "\n"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "block comment",
			input: "/* a\nb */x",
			expected: []lexerExpectation{
				{idl.TokenTypeComment, " a\nb "},
				{idl.TokenTypeIdentifier, "x"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "ellipsis and question",
			input: "long... rest?",
			expected: []lexerExpectation{
				{idl.TokenTypeIdentifier, "long"},
				{idl.TokenTypeEllipsis, "..."},
				{idl.TokenTypeIdentifier, "rest"},
				{idl.TokenTypeQuestion, "?"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "sequence type",
			input: "sequence<DOMString>",
			expected: []lexerExpectation{
				{idl.TokenTypeKeywordSequence, "sequence"},
				{idl.TokenTypeAngleOpen, "<"},
				{idl.TokenTypeIdentifier, "DOMString"},
				{idl.TokenTypeAngleClose, ">"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "extended attribute",
			input: "[PutForwards=name] attribute",
			expected: []lexerExpectation{
				{idl.TokenTypeSquareOpen, "["},
				{idl.TokenTypeIdentifier, "PutForwards"},
				{idl.TokenTypeEqual, "="},
				{idl.TokenTypeIdentifier, "name"},
				{idl.TokenTypeSquareClose, "]"},
				{idl.TokenTypeKeywordAttribute, "attribute"},
				{idl.TokenTypeEOF, ""},
			},
		},
		{
			name:  "crlf newline",
			input: "or\r\nnull",
			expected: []lexerExpectation{
				{idl.TokenTypeKeywordOr, "or"},
				{idl.TokenTypeNewline, "\r\n"},
				{idl.TokenTypeKeywordNull, "null"},
				{idl.TokenTypeEOF, ""},
			},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			input := fs.NewFileString("/test.idl", testCase.input, idl.FileKindWebIDL)
			rep := exc.NewReporter(nil)
			lexer := NewLexerWebIDL(rep)
			lexerFile, err := lexer.Lex(ctx, input)
			require.Nil(t, err)
			stream, err := lexerFile.Tokens(ctx)
			require.Nil(t, err)

			tokens := []lexerExpectation{}
			for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
				tokens = append(tokens, lexerExpectation{
					Type:  tok.Value().Type,
					Value: tok.Value().Value,
				})
			}
			require.Equal(t, testCase.expected, tokens)
			require.Empty(t, rep.Reported())
		})
	}
}

func TestLexerWebIDLInvalidNumber(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	input := fs.NewFileString("/test.idl", "123abc", idl.FileKindWebIDL)
	rep := exc.NewReporter(nil)
	lexer := NewLexerWebIDL(rep)
	lexerFile, err := lexer.Lex(ctx, input)
	require.Nil(t, err)
	stream, err := lexerFile.Tokens(ctx)
	require.Nil(t, err)
	for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
	}
	require.NotEmpty(t, rep.Reported())
	require.Equal(t, exc.CodeInvalidNumber, rep.Reported()[0].Code())
}
