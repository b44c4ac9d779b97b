// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
)

// resolver is the linking pass. It rewrites every by-name type reference to
// its resolved form, substitutes typedefs with their target types, and
// enforces the structural rules that only hold once substitution has
// happened: no doubly-nullable types and no reserved member names.
type resolver struct {
	table    *symbolTable
	reporter exc.Reporter
	// expanding guards against self-referential typedef chains.
	expanding map[string]bool
}

func newResolver(table *symbolTable, reporter exc.Reporter) *resolver {
	return &resolver{
		table:     table,
		reporter:  reporter,
		expanding: map[string]bool{},
	}
}

func (r *resolver) resolve(ctx context.Context, definitions []ast.Definition) bool {
	for _, d := range definitions {
		switch def := d.(type) {
		case *ast.Interface:
			if !r.resolveInterface(def) {
				return false
			}
		case *ast.Dictionary:
			for _, m := range def.Members {
				if m.Type = r.resolveType(def.SourceName(), m.Type); m.Type == nil {
					return false
				}
			}
		case *ast.Typedef:
			if def.Type = r.resolveType(def.SourceName(), def.Type); def.Type == nil {
				return false
			}
		case *ast.Callback:
			if def.Return = r.resolveType(def.SourceName(), def.Return); def.Return == nil {
				return false
			}
			if !r.resolveArgs(def.SourceName(), def.Args) {
				return false
			}
		case *ast.Enum:
		}
	}
	return true
}

func (r *resolver) resolveInterface(iface *ast.Interface) bool {
	source := iface.SourceName()
	if iface.Inherits != "" {
		parent, ok := r.table.definition(iface.Inherits)
		if !ok {
			r.report(source, exc.CodeUnknownIdentifier, fmt.Sprintf("unknown parent %s of interface %s", iface.Inherits, iface.Name.Name))
			return false
		}
		if parent.Kind() != ast.DefinitionKindInterface {
			r.report(source, exc.CodeUnknownIdentifier, fmt.Sprintf("parent %s of interface %s is a %s, not an interface", iface.Inherits, iface.Name.Name, parent.Kind()))
			return false
		}
	}
	for _, m := range iface.Members {
		if !r.checkReservedName(source, m) {
			return false
		}
		switch member := m.(type) {
		case *ast.Attribute:
			if member.Type = r.resolveType(source, member.Type); member.Type == nil {
				return false
			}
		case *ast.Operation:
			for _, sig := range member.Signatures {
				if sig.Return = r.resolveType(source, sig.Return); sig.Return == nil {
					return false
				}
				if !r.resolveArgs(source, sig.Args) {
					return false
				}
			}
		case *ast.Constant:
			if member.Type = r.resolveType(source, member.Type); member.Type == nil {
				return false
			}
		}
	}
	return true
}

// prototype cannot name anything reachable through the constructor object:
// static attributes, static operations, and constants. Non-static members may
// use it freely.
func (r *resolver) checkReservedName(source string, m ast.Member) bool {
	if m.Ident().Name != "prototype" {
		return true
	}
	reserved := m.IsStatic() || m.MemberKind() == ast.MemberKindConstant
	if !reserved {
		return true
	}
	r.report(source, exc.CodeReservedIdentifier, fmt.Sprintf("prototype is reserved and cannot name a static member or constant of %s", m.Ident().Scope))
	return false
}

func (r *resolver) resolveArgs(source string, args []*ast.Argument) bool {
	for _, arg := range args {
		if arg.Type = r.resolveType(source, arg.Type); arg.Type == nil {
			return false
		}
	}
	return true
}

// resolveType returns the linked form of t, or nil after reporting. The
// returned type may be a different node than the input when a typedef was
// substituted.
func (r *resolver) resolveType(source string, t *ast.Type) *ast.Type {
	switch t.Kind {
	case ast.TypeKindPrimitive:
		return t
	case ast.TypeKindReference:
		return r.resolveReference(source, t)
	case ast.TypeKindNullable:
		inner := r.resolveType(source, t.Inner)
		if inner == nil {
			return nil
		}
		if inner.IsNullable() {
			r.report(source, exc.CodeInvalidNullableNesting, fmt.Sprintf("%s is already nullable and cannot be made nullable again", inner))
			return nil
		}
		t.Inner = inner
		return t
	case ast.TypeKindSequence:
		inner := r.resolveType(source, t.Inner)
		if inner == nil {
			return nil
		}
		t.Inner = inner
		return t
	case ast.TypeKindUnion:
		for i, o := range t.Options {
			resolved := r.resolveType(source, o)
			if resolved == nil {
				return nil
			}
			t.Options[i] = resolved
		}
		return t
	default:
		r.report(source, exc.CodeUnknownFatal, fmt.Sprintf("unresolvable type kind %d", t.Kind))
		return nil
	}
}

func (r *resolver) resolveReference(source string, t *ast.Type) *ast.Type {
	d, ok := r.table.definition(t.Name)
	if !ok {
		r.report(source, exc.CodeUnknownIdentifier, fmt.Sprintf("unknown type %s", t.Name))
		return nil
	}
	if td, ok := d.(*ast.Typedef); ok {
		if r.expanding[td.Name.Name] {
			r.report(source, exc.CodeUnknownIdentifier, fmt.Sprintf("typedef %s expands through itself", td.Name.Name))
			return nil
		}
		r.expanding[td.Name.Name] = true
		expanded := r.resolveType(td.SourceName(), td.Type.Clone())
		delete(r.expanding, td.Name.Name)
		return expanded
	}
	t.ResolvedKind = d.Kind()
	return t
}

func (r *resolver) report(source string, code string, message string) {
	_ = r.reporter.Report(exc.New(exc.Location{URI: source}, code, message))
}
