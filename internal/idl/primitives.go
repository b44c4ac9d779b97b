// SPDX-License-Identifier: Apache-2.0

package idl

// Primitives maps WebIDL type words, after joining multi-word forms with a
// single space, to the canonical primitive names used throughout the image.
var Primitives = map[string]string{
	"void":                   "Void",
	"any":                    "Any",
	"object":                 "Object",
	"boolean":                "Boolean",
	"byte":                   "Byte",
	"octet":                  "Octet",
	"short":                  "Short",
	"unsigned short":         "UnsignedShort",
	"long":                   "Long",
	"unsigned long":          "UnsignedLong",
	"long long":              "LongLong",
	"unsigned long long":     "UnsignedLongLong",
	"float":                  "Float",
	"unrestricted float":     "UnrestrictedFloat",
	"double":                 "Double",
	"unrestricted double":    "UnrestrictedDouble",
	"DOMString":              "String",
	"USVString":              "USVString",
	"ByteString":             "ByteString",
}

// IsPrimitiveName reports whether name is one of the canonical primitive
// names produced by the parser.
func IsPrimitiveName(name string) bool {
	for _, canonical := range Primitives {
		if canonical == name {
			return true
		}
	}
	return false
}
