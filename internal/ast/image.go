// SPDX-License-Identifier: Apache-2.0

package ast

// Image is the fully parsed and linked output of one session: every top-level
// definition in declaration order.
type Image struct {
	Definitions []Definition
}

// Lookup finds the definition with the given top-level name.
func (i *Image) Lookup(name string) (Definition, bool) {
	for _, d := range i.Definitions {
		if d.Ident().Name == name {
			return d, true
		}
	}
	return nil, false
}

// LookupInterface finds the interface with the given name. Callback
// interfaces are included; dictionaries, enums, and the rest are not.
func (i *Image) LookupInterface(name string) (*Interface, bool) {
	d, ok := i.Lookup(name)
	if !ok {
		return nil, false
	}
	iface, ok := d.(*Interface)
	return iface, ok
}

// Interfaces returns every interface definition in declaration order.
func (i *Image) Interfaces() []*Interface {
	out := make([]*Interface, 0, len(i.Definitions))
	for _, d := range i.Definitions {
		if iface, ok := d.(*Interface); ok {
			out = append(out, iface)
		}
	}
	return out
}
