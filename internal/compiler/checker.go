// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
)

// checker runs the semantic rule battery over every linked definition. Each
// rule is keyed by the extended-attribute name that triggers it and inspects
// the full attribute set of the member, so the outcome never depends on the
// order annotations were written in. The first violation aborts the pass.
type checker struct {
	table    *symbolTable
	reporter exc.Reporter
}

func newChecker(table *symbolTable, reporter exc.Reporter) *checker {
	return &checker{table: table, reporter: reporter}
}

type memberRule func(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception

var memberRules = map[string]memberRule{
	"LegacyLenientSetter":    checkLegacyLenientSetter,
	"Replaceable":            checkReplaceable,
	"PutForwards":            checkPutForwards,
	"NewObject":              checkNewObject,
	"TreatNonCallableAsNull": checkTreatNonCallableAsNull,
}

func (c *checker) check(ctx context.Context, definitions []ast.Definition) bool {
	for _, d := range definitions {
		switch def := d.(type) {
		case *ast.Interface:
			if e := c.checkInterface(def); e != nil {
				_ = c.reporter.Report(e)
				return false
			}
		case *ast.Callback:
			if e := c.checkCallback(def); e != nil {
				_ = c.reporter.Report(e)
				return false
			}
		}
	}
	return true
}

func (c *checker) checkInterface(iface *ast.Interface) exc.Exception {
	if e := c.checkGlobal(iface); e != nil {
		return e
	}
	// An interface-level TreatNonCallableAsNull governs every callback-typed
	// attribute in its scope, independently of member-level occurrences.
	if iface.Attrs().Has("TreatNonCallableAsNull") {
		for _, m := range iface.Members {
			a, ok := m.(*ast.Attribute)
			if !ok {
				continue
			}
			d, found := c.table.definition(a.Type.ReferenceName())
			if !found || d.Kind() != ast.DefinitionKindCallback {
				continue
			}
			if !a.Type.IsNullable() {
				return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull on %s requires callback attribute %s to be nullable", iface.Name.Name, a.Name.QName()))
			}
			if d.Attrs().Has("LegacyTreatNonObjectAsNull") {
				return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull on %s conflicts with LegacyTreatNonObjectAsNull on callback %s", iface.Name.Name, d.Ident().Name))
			}
		}
	}
	for _, m := range iface.Members {
		for _, attr := range m.Attrs() {
			rule, ok := memberRules[attr.Name]
			if !ok {
				continue
			}
			if e := rule(c, iface, m, attr); e != nil {
				return e
			}
		}
	}
	return nil
}

// A callback type declaration may pick one legacy coercion behavior, not
// both.
func (c *checker) checkCallback(cb *ast.Callback) exc.Exception {
	if cb.Attrs().Has("TreatNonCallableAsNull") && cb.Attrs().Has("LegacyTreatNonObjectAsNull") {
		return c.violation(cb.SourceName(), fmt.Sprintf("TreatNonCallableAsNull and LegacyTreatNonObjectAsNull are mutually exclusive on callback %s", cb.Name.Name))
	}
	return nil
}

// A [Global] interface exposes its members on the global object and cannot
// also be constructible.
func (c *checker) checkGlobal(iface *ast.Interface) exc.Exception {
	global := iface.Global || iface.Attrs().Has("Global")
	if !global {
		return nil
	}
	for _, name := range []string{"LegacyFactoryFunction", "NamedConstructor", "HTMLConstructor"} {
		if iface.Attrs().Has(name) {
			return c.violation(iface.SourceName(), fmt.Sprintf("Global interface %s cannot declare %s", iface.Name.Name, name))
		}
	}
	for _, m := range iface.Members {
		op, ok := m.(*ast.Operation)
		if !ok || op.Name.Name != "constructor" {
			if m.Attrs().Has("HTMLConstructor") {
				return c.violation(iface.SourceName(), fmt.Sprintf("Global interface %s cannot declare HTMLConstructor", iface.Name.Name))
			}
			continue
		}
		for _, sig := range op.Signatures {
			if len(sig.Args) == 0 {
				return c.violation(iface.SourceName(), fmt.Sprintf("Global interface %s cannot declare constructor()", iface.Name.Name))
			}
		}
	}
	return nil
}

func checkLegacyLenientSetter(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception {
	if attr.Kind != ast.ExtendedAttributeKindFlag {
		return c.violation(iface.SourceName(), fmt.Sprintf("LegacyLenientSetter takes no argument (on %s)", m.Ident().QName()))
	}
	a, ok := m.(*ast.Attribute)
	if !ok || a.Static || !a.Readonly {
		return c.violation(iface.SourceName(), fmt.Sprintf("LegacyLenientSetter requires a non-static read-only attribute (on %s)", m.Ident().QName()))
	}
	for _, excluded := range []string{"PutForwards", "Replaceable"} {
		if m.Attrs().Has(excluded) {
			return c.violation(iface.SourceName(), fmt.Sprintf("LegacyLenientSetter and %s are mutually exclusive (on %s)", excluded, m.Ident().QName()))
		}
	}
	return nil
}

func checkReplaceable(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception {
	if attr.Kind != ast.ExtendedAttributeKindFlag {
		return c.violation(iface.SourceName(), fmt.Sprintf("Replaceable takes no argument (on %s)", m.Ident().QName()))
	}
	if iface.CallbackInterface {
		return c.violation(iface.SourceName(), fmt.Sprintf("Replaceable is illegal on callback interface member %s", m.Ident().QName()))
	}
	a, ok := m.(*ast.Attribute)
	if !ok || a.Static || !a.Readonly {
		return c.violation(iface.SourceName(), fmt.Sprintf("Replaceable requires a non-static read-only attribute (on %s)", m.Ident().QName()))
	}
	if m.Attrs().Has("PutForwards") {
		return c.violation(iface.SourceName(), fmt.Sprintf("Replaceable and PutForwards are mutually exclusive (on %s)", m.Ident().QName()))
	}
	return nil
}

func checkPutForwards(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception {
	if attr.Kind != ast.ExtendedAttributeKindIdent || attr.Value == "" {
		return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards requires a target attribute name (on %s)", m.Ident().QName()))
	}
	if iface.CallbackInterface {
		return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards is illegal on callback interface member %s", m.Ident().QName()))
	}
	a, ok := m.(*ast.Attribute)
	if !ok {
		return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards is only valid on attributes (on %s)", m.Ident().QName()))
	}
	if a.Static {
		return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards is illegal on static attribute %s", m.Ident().QName()))
	}
	return c.checkForwardingChain(iface, a, attr.Value)
}

// checkForwardingChain follows attr -> target interface -> its PutForwards
// target and so on. The origin attribute reappearing means assignments would
// forward forever.
func (c *checker) checkForwardingChain(iface *ast.Interface, a *ast.Attribute, target string) exc.Exception {
	origin := a.Name.QName()
	current := a
	currentTarget := target
	visited := map[string]bool{}
	for {
		refName := current.Type.ReferenceName()
		next, ok := c.interfaceNamed(refName)
		if refName == "" || !ok {
			return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards on %s requires an interface-typed attribute, got %s", current.Name.QName(), current.Type))
		}
		forwarded := next.Attribute(currentTarget)
		if forwarded == nil {
			return c.violation(iface.SourceName(), fmt.Sprintf("PutForwards target %s does not exist on interface %s (on %s)", currentTarget, next.Name.Name, current.Name.QName()))
		}
		if forwarded.Name.QName() == origin || visited[forwarded.Name.QName()] {
			return exc.New(exc.Location{URI: iface.SourceName()}, exc.CodeCyclicForwarding, fmt.Sprintf("PutForwards chain starting at %s forwards back to itself", origin))
		}
		visited[forwarded.Name.QName()] = true

		forwardedAttr := forwarded.Attrs().Get("PutForwards")
		if forwardedAttr == nil {
			return nil
		}
		current = forwarded
		currentTarget = forwardedAttr.Value
	}
}

func checkNewObject(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception {
	switch member := m.(type) {
	case *ast.Attribute:
		if !member.Readonly {
			return c.violation(iface.SourceName(), fmt.Sprintf("NewObject requires a read-only attribute or an operation (on %s)", m.Ident().QName()))
		}
	case *ast.Operation:
	default:
		return c.violation(iface.SourceName(), fmt.Sprintf("NewObject requires a read-only attribute or an operation (on %s)", m.Ident().QName()))
	}
	if !m.Attrs().Has("Affects") {
		return c.violation(iface.SourceName(), fmt.Sprintf("NewObject requires an Affects annotation (on %s)", m.Ident().QName()))
	}
	for _, excluded := range []string{"Cached", "StoreInSlot"} {
		if m.Attrs().Has(excluded) {
			return c.violation(iface.SourceName(), fmt.Sprintf("NewObject and %s are mutually exclusive (on %s)", excluded, m.Ident().QName()))
		}
	}
	return nil
}

func checkTreatNonCallableAsNull(c *checker, iface *ast.Interface, m ast.Member, attr *ast.ExtendedAttribute) exc.Exception {
	a, ok := m.(*ast.Attribute)
	if !ok {
		return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull is only valid on attributes (on %s)", m.Ident().QName()))
	}
	if !a.Type.IsNullable() {
		return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull requires a nullable callback type (on %s)", m.Ident().QName()))
	}
	refName := a.Type.ReferenceName()
	d, ok := c.table.definition(refName)
	if refName == "" || !ok || d.Kind() != ast.DefinitionKindCallback {
		return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull requires a nullable callback type (on %s)", m.Ident().QName()))
	}
	if d.Attrs().Has("LegacyTreatNonObjectAsNull") {
		return c.violation(iface.SourceName(), fmt.Sprintf("TreatNonCallableAsNull on %s conflicts with LegacyTreatNonObjectAsNull on callback %s", m.Ident().QName(), refName))
	}
	return nil
}

func (c *checker) interfaceNamed(name string) (*ast.Interface, bool) {
	d, ok := c.table.definition(name)
	if !ok {
		return nil, false
	}
	iface, ok := d.(*ast.Interface)
	return iface, ok
}

func (c *checker) violation(source string, message string) exc.Exception {
	return exc.New(exc.Location{URI: source}, exc.CodeExtendedAttributeViolation, message)
}
