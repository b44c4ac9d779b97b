// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"strings"
	"unicode"

	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
	"gopkg.widl.org/bindgen.go/internal/iter"
	"gopkg.widl.org/bindgen.go/internal/optional"
)

const (
	lexerWebIDLLookahead = 8
)

// LexerWebIDL implements a tokenizer for the WebIDL syntax.
type LexerWebIDL struct {
	reporter exc.Reporter
}

func NewLexerWebIDL(reporter exc.Reporter) *LexerWebIDL {
	return &LexerWebIDL{reporter: reporter}
}

func (self *LexerWebIDL) Lex(ctx context.Context, f idl.File) (idl.LexerFile, error) {
	return &lexerFileWebIDL{
		File:     f,
		reporter: self.reporter,
	}, nil
}

type lexerFileWebIDL struct {
	idl.File
	reporter exc.Reporter
}

func (self *lexerFileWebIDL) Tokens(ctx context.Context) (idl.Iterator[*idl.Token], error) {
	b, err := self.File.Body(ctx)
	if err != nil {
		return nil, err
	}
	points := iter.NewLookahead(iter.NewUnicodeFileBodyCtx(ctx, b), lexerWebIDLLookahead)
	return &lexerFileWebIDLTokens{
		uri:      self.File.Path(ctx),
		body:     points,
		reporter: self.reporter,
		line:     1,
		col:      0,
		offset:   -1,
	}, nil
}

type lexerFileWebIDLTokens struct {
	uri      string
	body     idl.Lookahead[idl.CodePoint]
	reporter exc.Reporter
	line     int32
	col      int32
	offset   int64
	emitEOF  bool
}

func (self *lexerFileWebIDLTokens) exc(code string, message string) exc.Exception {
	return exc.New(exc.Location{
		URI: self.uri,
		Location: idl.Location{
			Line:   self.line,
			Column: self.col,
			Offset: self.offset,
		},
	}, code, message)
}

func (self *lexerFileWebIDLTokens) next(ctx context.Context) optional.Optional[idl.CodePoint] {
	p := self.body.Next(ctx)
	if p.IsPresent() {
		self.addCol(rune(p.Value()))
	}
	return p
}

func (self *lexerFileWebIDLTokens) Next(ctx context.Context) optional.Optional[*idl.Token] {
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		r := rune(point.Value())
		switch r {
		case 0x00:
			return self.eof() // Treat null byte as EOF as it's not allowed.
		case 0x0009, 0x0020:
			continue // Generally ignore space and tab.
		case '\n':
			return self.newLineToken("\n", 1)
		case '\r':
			if n := self.body.Lookahead(ctx, 1); n.IsPresent() && n.Value() == '\n' {
				_ = self.next(ctx)
				return self.newLineToken("\r\n", 2)
			}
			return self.newLineToken("\r", 1)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return self.readNumber(ctx, string(r))
		case '"':
			return self.readText(ctx)
		case '/':
			n := self.body.Lookahead(ctx, 1)
			if !n.IsPresent() {
				return self.singleToken(idl.TokenTypeUnknown, "/")
			}
			switch n.Value() {
			case '/':
				_ = self.next(ctx)
				return self.readCommentLine(ctx)
			case '*':
				_ = self.next(ctx)
				return self.readCommentBlock(ctx)
			default:
				return self.singleToken(idl.TokenTypeUnknown, "/")
			}
		case '{':
			return self.singleToken(idl.TokenTypeCurlyOpen, "{")
		case '}':
			return self.singleToken(idl.TokenTypeCurlyClose, "}")
		case '[':
			return self.singleToken(idl.TokenTypeSquareOpen, "[")
		case ']':
			return self.singleToken(idl.TokenTypeSquareClose, "]")
		case '(':
			return self.singleToken(idl.TokenTypeParenOpen, "(")
		case ')':
			return self.singleToken(idl.TokenTypeParenClose, ")")
		case '<':
			return self.singleToken(idl.TokenTypeAngleOpen, "<")
		case '>':
			return self.singleToken(idl.TokenTypeAngleClose, ">")
		case ',':
			return self.singleToken(idl.TokenTypeComma, ",")
		case ';':
			return self.singleToken(idl.TokenTypeSemicolon, ";")
		case ':':
			return self.singleToken(idl.TokenTypeColon, ":")
		case '=':
			return self.singleToken(idl.TokenTypeEqual, "=")
		case '?':
			return self.singleToken(idl.TokenTypeQuestion, "?")
		case '-':
			return self.singleToken(idl.TokenTypeMinus, "-")
		case '.':
			n := self.body.Lookahead(ctx, 1)
			nn := self.body.Lookahead(ctx, 2)
			if n.IsPresent() && n.Value() == '.' && nn.IsPresent() && nn.Value() == '.' {
				_ = self.next(ctx)
				_ = self.next(ctx)
				t := newTokenLineSpan(self.line, self.col, self.offset, 3, idl.TokenTypeEllipsis, "...")
				return optional.Some(t)
			}
			return self.singleToken(idl.TokenTypeDot, ".")
		case '_':
			// an underscore with no other known context is treated as an
			// identifier prefix.
			return self.readIdentifier(ctx, string(r))
		default:
			if unicode.IsLetter(r) {
				tok := self.readIdentifier(ctx, string(r))
				if !tok.IsPresent() {
					return optional.None[*idl.Token]()
				}
				t := tok.Value()
				if kw, ok := idl.Keywords[t.Value]; ok {
					t.Type = kw
				}
				return optional.Some(t)
			}
			return self.singleToken(idl.TokenTypeUnknown, string(r))
		}
	}
	return self.eof()
}

func (self *lexerFileWebIDLTokens) eof() optional.Optional[*idl.Token] {
	if self.emitEOF {
		return optional.None[*idl.Token]()
	}
	self.emitEOF = true
	t := newTokenLineSpan(self.line, self.col, self.offset, 0, idl.TokenTypeEOF, "")
	return optional.Some(t)
}

func (self *lexerFileWebIDLTokens) readNumber(ctx context.Context, prefix string) optional.Optional[*idl.Token] {
	var builder strings.Builder
	_, _ = builder.WriteString(prefix)
	kind := idl.TokenTypeIntegerDecimal

	if prefix == "0" {
		if n := self.body.Lookahead(ctx, 1); n.IsPresent() && (n.Value() == 'x' || n.Value() == 'X') {
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
			kind = idl.TokenTypeIntegerHex
		}
	}

	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			break
		}
		r := rune(n.Value())
		isDigit := r >= '0' && r <= '9'
		isHexDigit := isDigit || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		switch {
		case kind == idl.TokenTypeIntegerHex && isHexDigit:
		case kind != idl.TokenTypeIntegerHex && isDigit:
		case kind == idl.TokenTypeIntegerDecimal && r == '.':
			kind = idl.TokenTypeFloatDecimal
		case kind == idl.TokenTypeFloatDecimal && (r == 'e' || r == 'E'):
		case kind == idl.TokenTypeFloatDecimal && (r == '-' || r == '+') && strings.HasSuffix(builder.String(), "e"):
		case kind == idl.TokenTypeFloatDecimal && (r == '-' || r == '+') && strings.HasSuffix(builder.String(), "E"):
		default:
			if unicode.IsLetter(r) {
				_ = self.reporter.Report(self.exc(exc.CodeInvalidNumber, "invalid character in numeric literal"))
				return optional.None[*idl.Token]()
			}
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), kind, builder.String())
			return optional.Some(t)
		}
		_ = self.next(ctx)
		_, _ = builder.WriteRune(r)
	}
	t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), kind, builder.String())
	return optional.Some(t)
}

func (self *lexerFileWebIDLTokens) readText(ctx context.Context) optional.Optional[*idl.Token] {
	var builder strings.Builder
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			_ = self.reporter.Report(self.exc(exc.CodeUnexpectedEOF, "EOF while reading string literal"))
			return optional.None[*idl.Token]()
		}
		switch n.Value() {
		case '\n', '\r':
			_ = self.reporter.Report(self.exc(exc.CodeSyntaxError, "newline in string literal"))
			return optional.None[*idl.Token]()
		case '"':
			_ = self.next(ctx)
			// Size includes the surrounding quotes for span accounting.
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len()+2, idl.TokenTypeText, builder.String())
			return optional.Some(t)
		default:
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
		}
	}
}

func (self *lexerFileWebIDLTokens) readIdentifier(ctx context.Context, prefix string) optional.Optional[*idl.Token] {
	var builder strings.Builder
	_, _ = builder.WriteString(prefix)
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), idl.TokenTypeIdentifier, builder.String())
			return optional.Some(t)
		}
		if unicode.IsLetter(rune(n.Value())) || unicode.IsDigit(rune(n.Value())) || n.Value() == '_' {
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
			continue
		}
		t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), idl.TokenTypeIdentifier, builder.String())
		return optional.Some(t)
	}
}

func (self *lexerFileWebIDLTokens) readCommentLine(ctx context.Context) optional.Optional[*idl.Token] {
	var builder strings.Builder
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || n.Value() == '\r' || n.Value() == '\n' {
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), idl.TokenTypeComment, builder.String())
			return optional.Some(t)
		}
		_ = self.next(ctx)
		_, _ = builder.WriteRune(rune(n.Value()))
	}
}

func (self *lexerFileWebIDLTokens) readCommentBlock(ctx context.Context) optional.Optional[*idl.Token] {
	var builder strings.Builder
	startLine := self.line
	startCol := self.col
	startOffset := self.offset
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			_ = self.reporter.Report(self.exc(exc.CodeUnexpectedEOF, "EOF while reading comment block"))
			t := newToken(startLine, startCol, startOffset, self.line, self.col, self.offset, idl.TokenTypeComment, builder.String())
			return optional.Some(t)
		}
		switch n.Value() {
		case '\n':
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
			self.newLine()
		case '\r':
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
			nn := self.body.Lookahead(ctx, 1)
			if nn.IsPresent() && nn.Value() == '\n' {
				_ = self.next(ctx)
				_, _ = builder.WriteRune(rune(nn.Value()))
			}
			self.newLine()
		case '*':
			nn := self.body.Lookahead(ctx, 2)
			if nn.IsPresent() && nn.Value() == '/' {
				_ = self.next(ctx)
				_ = self.next(ctx)
				t := newToken(startLine, startCol, startOffset, self.line, self.col, self.offset, idl.TokenTypeComment, builder.String())
				return optional.Some(t)
			}
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
		default:
			_ = self.next(ctx)
			_, _ = builder.WriteRune(rune(n.Value()))
		}
	}
}

func (self *lexerFileWebIDLTokens) singleToken(kind idl.TokenType, v string) optional.Optional[*idl.Token] {
	t := newToken(self.line, self.col-1, self.offset, self.line, self.col, self.offset+1, kind, v)
	return optional.Some(t)
}

func (self *lexerFileWebIDLTokens) newLine() {
	self.line = self.line + 1
	self.col = 0
	self.offset = self.offset + 1
}

func (self *lexerFileWebIDLTokens) newLineToken(v string, size int) optional.Optional[*idl.Token] {
	t := newToken(self.line, self.col-int32(size-1), self.offset-int64(size), self.line+1, 1, self.offset, idl.TokenTypeNewline, v)
	self.newLine()
	return optional.Some(t)
}

func (self *lexerFileWebIDLTokens) addCol(r rune) {
	self.col = self.col + 1
	self.offset = self.offset + int64(len(string(r)))
}

func (self *lexerFileWebIDLTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func newTokenLineSpan(line int32, col int32, offset int64, size int, kind idl.TokenType, value string) *idl.Token {
	return &idl.Token{
		Span: &idl.Span{
			Start: &idl.Location{
				Line:   line,
				Column: col - int32(size),
				Offset: offset - int64(size),
			},
			End: &idl.Location{
				Line:   line,
				Column: col,
				Offset: offset,
			},
		},
		Type:  kind,
		Value: value,
	}
}

func newToken(startLine int32, startCol int32, startOffset int64, endLine int32, endCol int32, endOffset int64, kind idl.TokenType, value string) *idl.Token {
	return &idl.Token{
		Span: &idl.Span{
			Start: &idl.Location{
				Line:   startLine,
				Column: startCol,
				Offset: startOffset,
			},
			End: &idl.Location{
				Line:   endLine,
				Column: endCol,
				Offset: endOffset,
			},
		},
		Type:  kind,
		Value: value,
	}
}
