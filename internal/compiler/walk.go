// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"gopkg.widl.org/bindgen.go/internal/ast"
)

func walkImage(image *ast.Image, f func(interface{})) {
	for _, d := range image.Definitions {
		walkDefinition(d, f)
	}
	f(image)
}

func walkDefinition(d ast.Definition, f func(interface{})) {
	f(d)
	switch def := d.(type) {
	case *ast.Interface:
		for _, m := range def.Members {
			walkMember(m, f)
		}
	case *ast.Dictionary:
		for _, m := range def.Members {
			f(m)
			walkType(m.Type, f)
		}
	case *ast.Typedef:
		walkType(def.Type, f)
	case *ast.Callback:
		walkType(def.Return, f)
		for _, arg := range def.Args {
			walkArgument(arg, f)
		}
	}
}

func walkMember(m ast.Member, f func(interface{})) {
	f(m)
	switch member := m.(type) {
	case *ast.Attribute:
		walkType(member.Type, f)
	case *ast.Operation:
		for _, sig := range member.Signatures {
			walkType(sig.Return, f)
			for _, arg := range sig.Args {
				walkArgument(arg, f)
			}
		}
	case *ast.Constant:
		walkType(member.Type, f)
	}
}

func walkArgument(a *ast.Argument, f func(interface{})) {
	walkType(a.Type, f)
	f(a)
}

func walkType(t *ast.Type, f func(interface{})) {
	if t == nil {
		return
	}
	switch t.Kind {
	case ast.TypeKindNullable, ast.TypeKindSequence:
		walkType(t.Inner, f)
	case ast.TypeKindUnion:
		for _, o := range t.Options {
			walkType(o, f)
		}
	}
	f(t)
}
