// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

// SubCompiler feeds one input file into the running session. Which
// implementation handles a file is decided by the file kind, so IDL text and
// cached binary images can be mixed freely in one invocation.
type SubCompiler interface {
	CompileFile(ctx context.Context, r exc.Reporter, session *Session, file idl.File, dumpTokens bool) error
}

func DefaultSubCompilers() map[idl.FileKind]SubCompiler {
	return map[idl.FileKind]SubCompiler{
		idl.FileKindWebIDL:      &SubCompilerWebIDL{},
		idl.FileKindImageBinary: &SubCompilerImageBinary{},
	}
}

type SubCompilerWebIDL struct{}

func (self *SubCompilerWebIDL) CompileFile(ctx context.Context, r exc.Reporter, session *Session, file idl.File, dumpTokens bool) error {
	if dumpTokens {
		lexer := NewLexerWebIDL(r)
		lf, err := lexer.Lex(ctx, file)
		if err != nil {
			return err
		}
		stream, err := lf.Tokens(ctx)
		if err != nil {
			return err
		}
		for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
			token := tok.Value()
			fmt.Printf("%-24s", token.Type)
			if token.Type != idl.TokenTypeNewline {
				fmt.Printf("'%s'", token.Value)
			}
			fmt.Println()
		}
	}
	return session.Parse(ctx, file)
}

type SubCompilerImageBinary struct{}

func (self *SubCompilerImageBinary) CompileFile(ctx context.Context, r exc.Reporter, session *Session, file idl.File, dumpTokens bool) error {
	body, err := file.Body(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close(ctx)
	}()
	content, err := readAll(ctx, body)
	if err != nil {
		return err
	}
	definitions, err := ast.DecodeImage(content)
	if err != nil {
		var versionErr *ast.ErrImageVersion
		if errors.As(err, &versionErr) {
			e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeImageVersionMismatch, err.Error())
			_ = r.Report(e)
			return e
		}
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, err.Error())
		_ = r.Report(e)
		return e
	}
	return session.Load(ctx, file.Path(ctx), definitions.Definitions)
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
