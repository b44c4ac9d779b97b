// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

type SessionState uint16

const (
	SessionStateFresh    SessionState = 0
	SessionStateParsing  SessionState = 1
	SessionStateFinished SessionState = 2
	SessionStateFailed   SessionState = 3
)

func (s SessionState) String() string {
	switch s {
	case SessionStateFresh:
		return "Fresh"
	case SessionStateParsing:
		return "Parsing"
	case SessionStateFinished:
		return "Finished"
	case SessionStateFailed:
		return "Failed"
	}
	return "Unknown"
}

// Session accumulates parsed files and links them into one Image. Forward
// references between files are fine because linking only happens in Finish.
//
// The lifecycle is one-way: any number of Parse calls, then exactly one
// Finish. The first error moves the session to Failed and every later call
// is rejected until Reset.
type Session struct {
	reporter    exc.Reporter
	table       *symbolTable
	definitions []ast.Definition
	state       SessionState
}

func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset discards all accumulated state and returns the session to Fresh.
func (s *Session) Reset() {
	s.reporter = exc.NewReporter(nil)
	s.table = newSymbolTable()
	s.definitions = nil
	s.state = SessionStateFresh
}

func (s *Session) State() SessionState {
	return s.state
}

// Parse tokenizes and parses one WebIDL file and registers its declarations.
// Declarations are only registered, not resolved, so a file may refer to
// names that another Parse call supplies later.
func (s *Session) Parse(ctx context.Context, f idl.File) error {
	switch s.state {
	case SessionStateFresh, SessionStateParsing:
	default:
		return exc.New(exc.Location{URI: f.Path(ctx)}, exc.CodeSessionState, fmt.Sprintf("cannot parse in state %s", s.state))
	}
	s.state = SessionStateParsing

	lexer := NewLexerWebIDL(s.reporter)
	lexerFile, err := lexer.Lex(ctx, f)
	if err != nil {
		return s.fail(err)
	}
	parser := NewParserWebIDL(s.reporter)
	tokens, err := parser.PrepareParse(ctx, lexerFile)
	if err != nil {
		return s.fail(err)
	}
	definitions := tokens.parse()
	if definitions == nil {
		return s.fail(s.firstReported())
	}

	for _, d := range definitions {
		if e := s.table.addDefinition(d); e != nil {
			_ = s.reporter.Report(e)
			return s.fail(e)
		}
		if iface, ok := d.(*ast.Interface); ok {
			for _, m := range iface.Members {
				if e := s.table.addMember(iface.SourceName(), m); e != nil {
					_ = s.reporter.Report(e)
					return s.fail(e)
				}
			}
		}
	}
	s.definitions = append(s.definitions, definitions...)
	return nil
}

// Load registers already-parsed definitions, typically decoded from a cached
// image, as if they had just been parsed. They participate in linking and
// validation together with everything from Parse.
func (s *Session) Load(ctx context.Context, source string, definitions []ast.Definition) error {
	switch s.state {
	case SessionStateFresh, SessionStateParsing:
	default:
		return exc.New(exc.Location{URI: source}, exc.CodeSessionState, fmt.Sprintf("cannot load in state %s", s.state))
	}
	s.state = SessionStateParsing

	for _, d := range definitions {
		if e := s.table.addDefinition(d); e != nil {
			_ = s.reporter.Report(e)
			return s.fail(e)
		}
		if iface, ok := d.(*ast.Interface); ok {
			for _, m := range iface.Members {
				if e := s.table.addMember(iface.SourceName(), m); e != nil {
					_ = s.reporter.Report(e)
					return s.fail(e)
				}
			}
		}
	}
	s.definitions = append(s.definitions, definitions...)
	return nil
}

// Finish links and validates everything parsed so far and produces the
// Image. Definitions keep the order in which they were parsed.
func (s *Session) Finish(ctx context.Context) (*ast.Image, error) {
	switch s.state {
	case SessionStateFresh, SessionStateParsing:
	default:
		return nil, exc.New(exc.Location{}, exc.CodeSessionState, fmt.Sprintf("cannot finish in state %s", s.state))
	}

	resolver := newResolver(s.table, s.reporter)
	if !resolver.resolve(ctx, s.definitions) {
		return nil, s.fail(s.firstReported())
	}
	checker := newChecker(s.table, s.reporter)
	if !checker.check(ctx, s.definitions) {
		return nil, s.fail(s.firstReported())
	}

	s.state = SessionStateFinished
	return &ast.Image{Definitions: s.definitions}, nil
}

func (s *Session) fail(err error) error {
	s.state = SessionStateFailed
	return err
}

func (s *Session) firstReported() error {
	reported := s.reporter.Reported()
	if len(reported) == 0 {
		return exc.New(exc.Location{}, exc.CodeUnknownFatal, "parse failed without a reported cause")
	}
	return reported[0]
}
