// SPDX-License-Identifier: Apache-2.0

// Package ast holds the data model produced by the WebIDL parser and consumed
// by the resolver, the checker, and the binding generator. Definitions keep
// their members in declaration order so that diagnostics and generated output
// are reproducible across runs.
package ast

import (
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/idl"
)

// Identifier is a name plus the lexical scope it was declared in. The scope
// is empty for top-level definitions.
type Identifier struct {
	Name  string
	Scope string
}

// QName returns the fully qualified form, "::Scope::name" for members and
// "::name" for top-level definitions.
func (i Identifier) QName() string {
	if i.Scope == "" {
		return "::" + i.Name
	}
	return fmt.Sprintf("::%s::%s", i.Scope, i.Name)
}

type DefinitionKind uint16

const (
	DefinitionKindInvalid    DefinitionKind = 0
	DefinitionKindInterface  DefinitionKind = 1
	DefinitionKindDictionary DefinitionKind = 2
	DefinitionKindTypedef    DefinitionKind = 3
	DefinitionKindCallback   DefinitionKind = 4
	DefinitionKindEnum       DefinitionKind = 5
)

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionKindInterface:
		return "interface"
	case DefinitionKindDictionary:
		return "dictionary"
	case DefinitionKindTypedef:
		return "typedef"
	case DefinitionKindCallback:
		return "callback"
	case DefinitionKindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Definition is the common surface of all top-level declarations.
type Definition interface {
	Kind() DefinitionKind
	Ident() Identifier
	Attrs() ExtendedAttributeSet
	SourceName() string
}

type definitionBase struct {
	Name               Identifier
	ExtendedAttributes ExtendedAttributeSet
	Source             string
	Span               *idl.Span
}

func (d *definitionBase) Ident() Identifier           { return d.Name }
func (d *definitionBase) Attrs() ExtendedAttributeSet { return d.ExtendedAttributes }
func (d *definitionBase) SourceName() string          { return d.Source }

// Interface is both a plain interface and, when CallbackInterface is set, a
// callback interface. Inherits holds the parent interface name; resolution to
// the parent definition happens in the linking pass.
type Interface struct {
	definitionBase
	Inherits          string
	Members           []Member
	CallbackInterface bool
	Global            bool
}

func (*Interface) Kind() DefinitionKind { return DefinitionKindInterface }

// Attribute returns the non-static attribute member with the given name, or
// nil if the interface has no such member.
func (i *Interface) Attribute(name string) *Attribute {
	for _, m := range i.Members {
		if a, ok := m.(*Attribute); ok && !a.Static && a.Name.Name == name {
			return a
		}
	}
	return nil
}

type Dictionary struct {
	definitionBase
	Members []*DictionaryMember
}

func (*Dictionary) Kind() DefinitionKind { return DefinitionKindDictionary }

type DictionaryMember struct {
	Name               Identifier
	Type               *Type
	Required           bool
	Default            string
	ExtendedAttributes ExtendedAttributeSet
}

// Typedef aliases a target type. The alias is substituted on demand during
// linking, so a typedef may be declared before or after its uses.
type Typedef struct {
	definitionBase
	Type *Type
}

func (*Typedef) Kind() DefinitionKind { return DefinitionKindTypedef }

// Callback is a callback function declaration.
type Callback struct {
	definitionBase
	Return *Type
	Args   []*Argument
}

func (*Callback) Kind() DefinitionKind { return DefinitionKindCallback }

type Enum struct {
	definitionBase
	Values []string
}

func (*Enum) Kind() DefinitionKind { return DefinitionKindEnum }

type MemberKind uint16

const (
	MemberKindInvalid   MemberKind = 0
	MemberKindAttribute MemberKind = 1
	MemberKindOperation MemberKind = 2
	MemberKindConstant  MemberKind = 3
)

// Member is the common surface of interface members.
type Member interface {
	MemberKind() MemberKind
	Ident() Identifier
	IsStatic() bool
	Attrs() ExtendedAttributeSet
}

type memberBase struct {
	Name               Identifier
	Static             bool
	ExtendedAttributes ExtendedAttributeSet
	Span               *idl.Span
}

func (m *memberBase) Ident() Identifier           { return m.Name }
func (m *memberBase) IsStatic() bool              { return m.Static }
func (m *memberBase) Attrs() ExtendedAttributeSet { return m.ExtendedAttributes }

type Attribute struct {
	memberBase
	Type     *Type
	Readonly bool
}

func (*Attribute) MemberKind() MemberKind { return MemberKindAttribute }

// Operation accumulates every overload sharing one name into Signatures, in
// declaration order.
type Operation struct {
	memberBase
	Signatures []*Signature
	Qualifiers []string
}

func (*Operation) MemberKind() MemberKind { return MemberKindOperation }

// HasQualifier reports whether the operation carries the given special
// qualifier (getter, setter, creator, or deleter).
func (o *Operation) HasQualifier(q string) bool {
	for _, have := range o.Qualifiers {
		if have == q {
			return true
		}
	}
	return false
}

type Signature struct {
	Return *Type
	Args   []*Argument
}

type Argument struct {
	Name     string
	Type     *Type
	Optional bool
	Variadic bool
	Default  string
}

type Constant struct {
	memberBase
	Type  *Type
	Value string
}

func (*Constant) MemberKind() MemberKind { return MemberKindConstant }
