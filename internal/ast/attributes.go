// SPDX-License-Identifier: Apache-2.0

package ast

type ExtendedAttributeKind uint16

const (
	ExtendedAttributeKindFlag      ExtendedAttributeKind = 0 // [Name]
	ExtendedAttributeKindIdent     ExtendedAttributeKind = 1 // [Name=Value]
	ExtendedAttributeKindArgList   ExtendedAttributeKind = 2 // [Name(args...)]
	ExtendedAttributeKindIdentList ExtendedAttributeKind = 3 // [Name=(a,b,c)]
)

// ExtendedAttribute is the loosely-typed form of a bracketed annotation. The
// parser accepts any of the shapes; whether a shape and value are legal for a
// particular attribute name is the checker's concern.
type ExtendedAttribute struct {
	Name   string
	Kind   ExtendedAttributeKind
	Value  string
	Args   []*Argument
	Values []string
}

// ExtendedAttributeSet preserves the source order of the attributes on one
// definition or member. Combination rules are order-independent, so lookups
// go through Get/Has rather than position.
type ExtendedAttributeSet []*ExtendedAttribute

func (s ExtendedAttributeSet) Get(name string) *ExtendedAttribute {
	for _, a := range s {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (s ExtendedAttributeSet) Has(name string) bool {
	return s.Get(name) != nil
}
