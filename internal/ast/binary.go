// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"encoding"
	"fmt"

	"github.com/dekarrin/rezi"
)

// Binary encoding of an Image, used to persist the parsed and linked
// definition list between a "collect all IDL" pass and a later per-interface
// generation pass. The artifact is opaque and version-matched: decoding data
// produced by a different encoding version fails with ErrImageVersion.

const imageMagic = "WIDLIMG"

// ImageEncodingVersion is bumped whenever the layout below changes.
const ImageEncodingVersion = 1

// ErrImageVersion is returned by DecodeImage when the artifact was produced
// by an incompatible encoder.
type ErrImageVersion struct {
	Found int
}

func (e *ErrImageVersion) Error() string {
	return fmt.Sprintf("image was encoded with version %d, expected %d", e.Found, ImageEncodingVersion)
}

// EncodeImage serializes the image with its magic/version header.
func EncodeImage(img *Image) []byte {
	var data []byte
	data = append(data, rezi.EncString(imageMagic)...)
	data = append(data, rezi.EncInt(ImageEncodingVersion)...)
	data = append(data, rezi.EncInt(len(img.Definitions))...)
	for _, d := range img.Definitions {
		data = append(data, rezi.EncInt(int(d.Kind()))...)
		data = append(data, rezi.EncBinary(d.(encoding.BinaryMarshaler))...)
	}
	return data
}

// DecodeImage is the inverse of EncodeImage.
func DecodeImage(data []byte) (*Image, error) {
	magic, n, err := rezi.DecString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding image magic: %w", err)
	}
	data = data[n:]
	if magic != imageMagic {
		return nil, fmt.Errorf("not a serialized image (bad magic %q)", magic)
	}
	version, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("decoding image version: %w", err)
	}
	data = data[n:]
	if version != ImageEncodingVersion {
		return nil, &ErrImageVersion{Found: version}
	}
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("decoding definition count: %w", err)
	}
	data = data[n:]

	img := &Image{}
	for x := 0; x < count; x = x + 1 {
		kind, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, fmt.Errorf("decoding definition kind: %w", err)
		}
		data = data[n:]

		var def Definition
		switch DefinitionKind(kind) {
		case DefinitionKindInterface:
			def = &Interface{}
		case DefinitionKindDictionary:
			def = &Dictionary{}
		case DefinitionKindTypedef:
			def = &Typedef{}
		case DefinitionKindCallback:
			def = &Callback{}
		case DefinitionKindEnum:
			def = &Enum{}
		default:
			return nil, fmt.Errorf("unknown definition kind %d in image", kind)
		}
		n, err = rezi.DecBinary(data, def.(encoding.BinaryUnmarshaler))
		if err != nil {
			return nil, fmt.Errorf("decoding %s definition: %w", DefinitionKind(kind), err)
		}
		data = data[n:]
		img.Definitions = append(img.Definitions, def)
	}
	return img, nil
}

func (i Identifier) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(i.Name)...)
	data = append(data, rezi.EncString(i.Scope)...)
	return data, nil
}

func (i *Identifier) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if i.Name, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	if i.Scope, _, err = rezi.DecString(data); err != nil {
		return err
	}
	return nil
}

func (t Type) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(int(t.Kind))...)
	data = append(data, rezi.EncString(t.Name)...)
	data = append(data, rezi.EncBool(t.Inner != nil)...)
	if t.Inner != nil {
		data = append(data, rezi.EncBinary(*t.Inner)...)
	}
	data = append(data, rezi.EncInt(len(t.Options))...)
	for _, o := range t.Options {
		data = append(data, rezi.EncBinary(*o)...)
	}
	data = append(data, rezi.EncInt(int(t.ResolvedKind))...)
	return data, nil
}

func (t *Type) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	var v int
	if v, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	t.Kind = TypeKind(v)
	data = data[n:]
	if t.Name, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	var hasInner bool
	if hasInner, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	if hasInner {
		t.Inner = &Type{}
		if n, err = rezi.DecBinary(data, t.Inner); err != nil {
			return err
		}
		data = data[n:]
	}
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		o := &Type{}
		if n, err = rezi.DecBinary(data, o); err != nil {
			return err
		}
		data = data[n:]
		t.Options = append(t.Options, o)
	}
	if v, _, err = rezi.DecInt(data); err != nil {
		return err
	}
	t.ResolvedKind = DefinitionKind(v)
	return nil
}

func (a Argument) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(a.Name)...)
	data = append(data, rezi.EncBinary(*a.Type)...)
	data = append(data, rezi.EncBool(a.Optional)...)
	data = append(data, rezi.EncBool(a.Variadic)...)
	data = append(data, rezi.EncString(a.Default)...)
	return data, nil
}

func (a *Argument) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if a.Name, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	a.Type = &Type{}
	if n, err = rezi.DecBinary(data, a.Type); err != nil {
		return err
	}
	data = data[n:]
	if a.Optional, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	if a.Variadic, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	if a.Default, _, err = rezi.DecString(data); err != nil {
		return err
	}
	return nil
}

func (e ExtendedAttribute) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(e.Name)...)
	data = append(data, rezi.EncInt(int(e.Kind))...)
	data = append(data, rezi.EncString(e.Value)...)
	data = append(data, encArguments(e.Args)...)
	data = append(data, rezi.EncInt(len(e.Values))...)
	for _, v := range e.Values {
		data = append(data, rezi.EncString(v)...)
	}
	return data, nil
}

func (e *ExtendedAttribute) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	var v int
	if e.Name, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	if v, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	e.Kind = ExtendedAttributeKind(v)
	data = data[n:]
	if e.Value, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	if e.Args, n, err = decArguments(data); err != nil {
		return err
	}
	data = data[n:]
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		var s string
		if s, n, err = rezi.DecString(data); err != nil {
			return err
		}
		data = data[n:]
		e.Values = append(e.Values, s)
	}
	return nil
}

func encArguments(args []*Argument) []byte {
	var data []byte
	data = append(data, rezi.EncInt(len(args))...)
	for _, a := range args {
		data = append(data, rezi.EncBinary(*a)...)
	}
	return data
}

func decArguments(data []byte) ([]*Argument, int, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	read := n
	data = data[n:]
	var args []*Argument
	for x := 0; x < count; x = x + 1 {
		a := &Argument{}
		if n, err = rezi.DecBinary(data, a); err != nil {
			return nil, 0, err
		}
		read = read + n
		data = data[n:]
		args = append(args, a)
	}
	return args, read, nil
}

func encAttributeSet(s ExtendedAttributeSet) []byte {
	var data []byte
	data = append(data, rezi.EncInt(len(s))...)
	for _, a := range s {
		data = append(data, rezi.EncBinary(*a)...)
	}
	return data
}

func decAttributeSet(data []byte) (ExtendedAttributeSet, int, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	read := n
	data = data[n:]
	var set ExtendedAttributeSet
	for x := 0; x < count; x = x + 1 {
		a := &ExtendedAttribute{}
		if n, err = rezi.DecBinary(data, a); err != nil {
			return nil, 0, err
		}
		read = read + n
		data = data[n:]
		set = append(set, a)
	}
	return set, read, nil
}

func (d definitionBase) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(d.Name)...)
	data = append(data, encAttributeSet(d.ExtendedAttributes)...)
	data = append(data, rezi.EncString(d.Source)...)
	return data, nil
}

func (d *definitionBase) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &d.Name); err != nil {
		return err
	}
	data = data[n:]
	if d.ExtendedAttributes, n, err = decAttributeSet(data); err != nil {
		return err
	}
	data = data[n:]
	if d.Source, _, err = rezi.DecString(data); err != nil {
		return err
	}
	return nil
}

func (m memberBase) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(m.Name)...)
	data = append(data, rezi.EncBool(m.Static)...)
	data = append(data, encAttributeSet(m.ExtendedAttributes)...)
	return data, nil
}

func (m *memberBase) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &m.Name); err != nil {
		return err
	}
	data = data[n:]
	if m.Static, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	if m.ExtendedAttributes, _, err = decAttributeSet(data); err != nil {
		return err
	}
	return nil
}

func (i Interface) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(i.definitionBase)...)
	data = append(data, rezi.EncString(i.Inherits)...)
	data = append(data, rezi.EncBool(i.CallbackInterface)...)
	data = append(data, rezi.EncBool(i.Global)...)
	data = append(data, rezi.EncInt(len(i.Members))...)
	for _, m := range i.Members {
		data = append(data, rezi.EncInt(int(m.MemberKind()))...)
		data = append(data, rezi.EncBinary(m.(encoding.BinaryMarshaler))...)
	}
	return data, nil
}

func (i *Interface) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &i.definitionBase); err != nil {
		return err
	}
	data = data[n:]
	if i.Inherits, n, err = rezi.DecString(data); err != nil {
		return err
	}
	data = data[n:]
	if i.CallbackInterface, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	if i.Global, n, err = rezi.DecBool(data); err != nil {
		return err
	}
	data = data[n:]
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		var kind int
		if kind, n, err = rezi.DecInt(data); err != nil {
			return err
		}
		data = data[n:]
		var m Member
		switch MemberKind(kind) {
		case MemberKindAttribute:
			m = &Attribute{}
		case MemberKindOperation:
			m = &Operation{}
		case MemberKindConstant:
			m = &Constant{}
		default:
			return fmt.Errorf("unknown member kind %d in image", kind)
		}
		if n, err = rezi.DecBinary(data, m.(encoding.BinaryUnmarshaler)); err != nil {
			return err
		}
		data = data[n:]
		i.Members = append(i.Members, m)
	}
	return nil
}

func (a Attribute) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(a.memberBase)...)
	data = append(data, rezi.EncBinary(*a.Type)...)
	data = append(data, rezi.EncBool(a.Readonly)...)
	return data, nil
}

func (a *Attribute) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &a.memberBase); err != nil {
		return err
	}
	data = data[n:]
	a.Type = &Type{}
	if n, err = rezi.DecBinary(data, a.Type); err != nil {
		return err
	}
	data = data[n:]
	if a.Readonly, _, err = rezi.DecBool(data); err != nil {
		return err
	}
	return nil
}

func (o Operation) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(o.memberBase)...)
	data = append(data, rezi.EncInt(len(o.Signatures))...)
	for _, s := range o.Signatures {
		data = append(data, rezi.EncBinary(*s.Return)...)
		data = append(data, encArguments(s.Args)...)
	}
	data = append(data, rezi.EncInt(len(o.Qualifiers))...)
	for _, q := range o.Qualifiers {
		data = append(data, rezi.EncString(q)...)
	}
	return data, nil
}

func (o *Operation) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &o.memberBase); err != nil {
		return err
	}
	data = data[n:]
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		sig := &Signature{Return: &Type{}}
		if n, err = rezi.DecBinary(data, sig.Return); err != nil {
			return err
		}
		data = data[n:]
		if sig.Args, n, err = decArguments(data); err != nil {
			return err
		}
		data = data[n:]
		o.Signatures = append(o.Signatures, sig)
	}
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		var q string
		if q, n, err = rezi.DecString(data); err != nil {
			return err
		}
		data = data[n:]
		o.Qualifiers = append(o.Qualifiers, q)
	}
	return nil
}

func (c Constant) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(c.memberBase)...)
	data = append(data, rezi.EncBinary(*c.Type)...)
	data = append(data, rezi.EncString(c.Value)...)
	return data, nil
}

func (c *Constant) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &c.memberBase); err != nil {
		return err
	}
	data = data[n:]
	c.Type = &Type{}
	if n, err = rezi.DecBinary(data, c.Type); err != nil {
		return err
	}
	data = data[n:]
	if c.Value, _, err = rezi.DecString(data); err != nil {
		return err
	}
	return nil
}

func (d Dictionary) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(d.definitionBase)...)
	data = append(data, rezi.EncInt(len(d.Members))...)
	for _, m := range d.Members {
		data = append(data, rezi.EncBinary(m.Name)...)
		data = append(data, rezi.EncBinary(*m.Type)...)
		data = append(data, rezi.EncBool(m.Required)...)
		data = append(data, rezi.EncString(m.Default)...)
		data = append(data, encAttributeSet(m.ExtendedAttributes)...)
	}
	return data, nil
}

func (d *Dictionary) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &d.definitionBase); err != nil {
		return err
	}
	data = data[n:]
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		m := &DictionaryMember{Type: &Type{}}
		if n, err = rezi.DecBinary(data, &m.Name); err != nil {
			return err
		}
		data = data[n:]
		if n, err = rezi.DecBinary(data, m.Type); err != nil {
			return err
		}
		data = data[n:]
		if m.Required, n, err = rezi.DecBool(data); err != nil {
			return err
		}
		data = data[n:]
		if m.Default, n, err = rezi.DecString(data); err != nil {
			return err
		}
		data = data[n:]
		if m.ExtendedAttributes, n, err = decAttributeSet(data); err != nil {
			return err
		}
		data = data[n:]
		d.Members = append(d.Members, m)
	}
	return nil
}

func (t Typedef) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(t.definitionBase)...)
	data = append(data, rezi.EncBinary(*t.Type)...)
	return data, nil
}

func (t *Typedef) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &t.definitionBase); err != nil {
		return err
	}
	data = data[n:]
	t.Type = &Type{}
	if _, err = rezi.DecBinary(data, t.Type); err != nil {
		return err
	}
	return nil
}

func (c Callback) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(c.definitionBase)...)
	data = append(data, rezi.EncBinary(*c.Return)...)
	data = append(data, encArguments(c.Args)...)
	return data, nil
}

func (c *Callback) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &c.definitionBase); err != nil {
		return err
	}
	data = data[n:]
	c.Return = &Type{}
	if n, err = rezi.DecBinary(data, c.Return); err != nil {
		return err
	}
	data = data[n:]
	if c.Args, _, err = decArguments(data); err != nil {
		return err
	}
	return nil
}

func (e Enum) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(e.definitionBase)...)
	data = append(data, rezi.EncInt(len(e.Values))...)
	for _, v := range e.Values {
		data = append(data, rezi.EncString(v)...)
	}
	return data, nil
}

func (e *Enum) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	if n, err = rezi.DecBinary(data, &e.definitionBase); err != nil {
		return err
	}
	data = data[n:]
	var count int
	if count, n, err = rezi.DecInt(data); err != nil {
		return err
	}
	data = data[n:]
	for x := 0; x < count; x = x + 1 {
		var v string
		if v, n, err = rezi.DecString(data); err != nil {
			return err
		}
		data = data[n:]
		e.Values = append(e.Values, v)
	}
	return nil
}
