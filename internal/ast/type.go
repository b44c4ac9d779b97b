// SPDX-License-Identifier: Apache-2.0

package ast

import "strings"

type TypeKind uint16

const (
	TypeKindInvalid   TypeKind = 0
	TypeKindPrimitive TypeKind = 1
	// TypeKindReference is a by-name reference to another definition. The
	// parser records every unknown type name this way; the linking pass either
	// resolves it (filling ResolvedKind) or fails the session.
	TypeKindReference TypeKind = 2
	TypeKindNullable  TypeKind = 3
	TypeKindSequence  TypeKind = 4
	TypeKindUnion     TypeKind = 5
)

// Type is the tagged representation of every representable WebIDL type.
// Primitive and Reference use Name, Nullable and Sequence use Inner, and
// Union uses Options. There is no Typedef variant: aliases are substituted
// into their target type during linking.
type Type struct {
	Kind    TypeKind
	Name    string
	Inner   *Type
	Options []*Type
	// ResolvedKind is set on references by the linking pass and records what
	// kind of definition the name resolved to.
	ResolvedKind DefinitionKind
}

func NewPrimitiveType(name string) *Type {
	return &Type{Kind: TypeKindPrimitive, Name: name}
}

func NewReferenceType(name string) *Type {
	return &Type{Kind: TypeKindReference, Name: name}
}

func NewNullableType(inner *Type) *Type {
	return &Type{Kind: TypeKindNullable, Inner: inner}
}

func NewSequenceType(inner *Type) *Type {
	return &Type{Kind: TypeKindSequence, Inner: inner}
}

// Clone returns a deep copy. Typedef substitution splices the target type
// into many places, and each use site must own its copy so that later
// rewrites do not alias.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	out := &Type{
		Kind:         t.Kind,
		Name:         t.Name,
		Inner:        t.Inner.Clone(),
		ResolvedKind: t.ResolvedKind,
	}
	if t.Options != nil {
		out.Options = make([]*Type, 0, len(t.Options))
		for _, o := range t.Options {
			out.Options = append(out.Options, o.Clone())
		}
	}
	return out
}

// Innermost unwraps nullable and sequence layers down to the element type.
func (t *Type) Innermost() *Type {
	for t.Kind == TypeKindNullable || t.Kind == TypeKindSequence {
		t = t.Inner
	}
	return t
}

// IsNullable reports whether the outermost layer of the type is nullable.
func (t *Type) IsNullable() bool {
	return t.Kind == TypeKindNullable
}

// ReferenceName returns the referenced definition name when the type, after
// stripping a nullable wrapper, is a reference. Empty string otherwise.
func (t *Type) ReferenceName() string {
	if t.Kind == TypeKindNullable {
		t = t.Inner
	}
	if t.Kind == TypeKindReference {
		return t.Name
	}
	return ""
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeKindPrimitive, TypeKindReference:
		return t.Name
	case TypeKindNullable:
		return t.Inner.String() + "?"
	case TypeKindSequence:
		return "sequence<" + t.Inner.String() + ">"
	case TypeKindUnion:
		names := make([]string, 0, len(t.Options))
		for _, o := range t.Options {
			names = append(names, o.String())
		}
		return "(" + strings.Join(names, " or ") + ")"
	default:
		return "invalid"
	}
}
