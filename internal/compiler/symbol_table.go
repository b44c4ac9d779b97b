// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"
	"sync"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
)

// symbolTable tracks every name declared during a session. Top-level
// definitions and interface members share the table, keyed by their
// fully-qualified name. Collisions are reported the moment the second
// declaration is registered.
type symbolTable struct {
	lock    sync.Mutex
	symbols map[string]ast.Definition
	members map[string]ast.Member
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		symbols: map[string]ast.Definition{},
		members: map[string]ast.Member{},
	}
}

func (t *symbolTable) addDefinition(d ast.Definition) exc.Exception {
	t.lock.Lock()
	defer t.lock.Unlock()
	qname := d.Ident().QName()
	if _, ok := t.symbols[qname]; ok {
		return exc.New(exc.Location{URI: d.SourceName()}, exc.CodeDuplicateIdentifier, fmt.Sprintf("duplicate definition of %s", d.Ident().Name))
	}
	t.symbols[qname] = d
	return nil
}

func (t *symbolTable) addMember(source string, m ast.Member) exc.Exception {
	t.lock.Lock()
	defer t.lock.Unlock()
	qname := m.Ident().QName()
	if _, ok := t.members[qname]; ok {
		return exc.New(exc.Location{URI: source}, exc.CodeDuplicateIdentifier, fmt.Sprintf("duplicate member %s in %s", m.Ident().Name, m.Ident().Scope))
	}
	t.members[qname] = m
	return nil
}

func (t *symbolTable) definition(name string) (ast.Definition, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	d, ok := t.symbols[ast.Identifier{Name: name}.QName()]
	return d, ok
}
