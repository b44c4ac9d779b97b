// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"os"
	"strings"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
	"gopkg.widl.org/bindgen.go/internal/target"
)

type CompileRequest struct {
	// Files are the input targets in the order given on the command line.
	// That order is the declaration order of the resulting image.
	Files      []string
	DumpTokens bool
	DumpTree   bool
}

type CompileResponse struct {
	Image *ast.Image
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type Option func(c *compiler) error

func OptionWithFS(fs idl.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func New(opts ...Option) (Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.SubCompilers == nil {
		c.SubCompilers = DefaultSubCompilers()
	}
	return c, nil
}

type compiler struct {
	LookupENV    func(string) (string, bool)
	FS           idl.FileSystem
	Reporter     exc.Reporter
	SubCompilers map[idl.FileKind]SubCompiler
}

// Compile runs the whole front end over the requested targets. Files are
// processed strictly in the given order and within one session, so
// diagnostics and the definition order of the image are reproducible across
// runs.
func (self *compiler) Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error) {
	targets := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		targets = append(targets, target.Normalize(f))
	}
	files := make([]idl.File, 0, len(targets))
	loaded := make(map[string]bool, len(targets))
	for _, target := range targets {
		in, err := self.FS.Open(ctx, target)
		if err != nil {
			return nil, err
		}
		for _, inf := range in {
			if inf.Kind(ctx) == idl.FileKindNone {
				continue
			}
			if loaded[inf.Path(ctx)] {
				continue
			}
			loaded[inf.Path(ctx)] = true
			files = append(files, inf)
		}
	}

	session := NewSession()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sc := self.SubCompilers[file.Kind(ctx)]
		if sc == nil {
			e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "Unsupported file format")
			return nil, self.Reporter.Report(e)
		}
		if err := sc.CompileFile(ctx, self.Reporter, session, file, req.DumpTokens); err != nil {
			return nil, self.compileError(err)
		}
	}

	image, err := session.Finish(ctx)
	if err != nil {
		return nil, self.compileError(err)
	}
	if req.DumpTree {
		dumpTree(os.Stdout, image)
	}
	return &CompileResponse{Image: image}, nil
}

func (self *compiler) compileError(err error) error {
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return MultiException(caught)
	}
	return err
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
