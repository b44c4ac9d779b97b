// SPDX-License-Identifier: Apache-2.0

package idl

import (
	"context"
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

// Location is a position within one source fragment. Lines and columns are
// 1-based, offsets are byte offsets from the start of the fragment.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start *Location
	End   *Location
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindWebIDL
	FileKindImageBinary
	FileKindConfigYAML
	FileKindConfigTOML
)

func (k FileKind) String() string {
	switch k {
	case FileKindWebIDL:
		return "webidl"
	case FileKindImageBinary:
		return "webidl-image"
	case FileKindConfigYAML:
		return "config-yaml"
	case FileKindConfigTOML:
		return "config-toml"
	case FileKindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

type LexerFile interface {
	File
	Tokens(ctx context.Context) (Iterator[*Token], error)
}

type Lexer interface {
	Lex(ctx context.Context, f File) (LexerFile, error)
}

type Token struct {
	Span  *Span
	Type  TokenType
	Value string
}
