// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"testing"

	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/require"
)

func TestImageRoundTrip(t *testing.T) {
	t.Parallel()

	img := &Image{
		Definitions: []Definition{
			&Interface{
				definitionBase: definitionBase{
					Name:   Identifier{Name: "Node"},
					Source: "/dom.idl",
					ExtendedAttributes: ExtendedAttributeSet{
						{Name: "Global", Kind: ExtendedAttributeKindFlag},
					},
				},
				Inherits: "EventTarget",
				Global:   true,
				Members: []Member{
					&Attribute{
						memberBase: memberBase{Name: Identifier{Name: "name", Scope: "Node"}},
						Type:       NewPrimitiveType("String"),
						Readonly:   true,
					},
					&Operation{
						memberBase: memberBase{Name: Identifier{Name: "item", Scope: "Node"}},
						Signatures: []*Signature{
							{
								Return: &Type{Kind: TypeKindReference, Name: "Node", ResolvedKind: DefinitionKindInterface},
								Args: []*Argument{
									{Name: "index", Type: NewPrimitiveType("UnsignedLong")},
								},
							},
						},
						Qualifiers: []string{"getter"},
					},
					&Constant{
						memberBase: memberBase{Name: Identifier{Name: "ELEMENT", Scope: "Node"}},
						Type:       NewPrimitiveType("Long"),
						Value:      "1",
					},
				},
			},
			&Dictionary{
				definitionBase: definitionBase{Name: Identifier{Name: "Options"}, Source: "/dom.idl"},
				Members: []*DictionaryMember{
					{
						Name:     Identifier{Name: "deep", Scope: "Options"},
						Type:     NewPrimitiveType("Boolean"),
						Required: true,
						Default:  "false",
					},
				},
			},
			&Typedef{
				definitionBase: definitionBase{Name: Identifier{Name: "NodeList"}, Source: "/dom.idl"},
				Type:           NewSequenceType(&Type{Kind: TypeKindReference, Name: "Node", ResolvedKind: DefinitionKindInterface}),
			},
			&Callback{
				definitionBase: definitionBase{Name: Identifier{Name: "Visitor"}, Source: "/dom.idl"},
				Return:         NewPrimitiveType("Void"),
				Args: []*Argument{
					{Name: "node", Type: NewNullableType(&Type{Kind: TypeKindReference, Name: "Node", ResolvedKind: DefinitionKindInterface})},
				},
			},
			&Enum{
				definitionBase: definitionBase{Name: Identifier{Name: "Mode"}, Source: "/dom.idl"},
				Values:         []string{"open", "closed"},
			},
		},
	}

	decoded, err := DecodeImage(EncodeImage(img))
	require.Nil(t, err)
	require.Equal(t, img, decoded)
}

func TestDecodeImageBadMagic(t *testing.T) {
	t.Parallel()

	data := rezi.EncString("NOTANIMG")
	_, err := DecodeImage(data)
	require.NotNil(t, err)
}

func TestDecodeImageVersionMismatch(t *testing.T) {
	t.Parallel()

	var data []byte
	data = append(data, rezi.EncString("WIDLIMG")...)
	data = append(data, rezi.EncInt(ImageEncodingVersion+1)...)
	data = append(data, rezi.EncInt(0)...)

	_, err := DecodeImage(data)
	require.NotNil(t, err)
	var versionErr *ErrImageVersion
	require.ErrorAs(t, err, &versionErr)
	require.Equal(t, ImageEncodingVersion+1, versionErr.Found)
}
