// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"
	"io"

	"gopkg.widl.org/bindgen.go/internal/ast"
)

// dumpTree prints one line per AST node in declaration order. It is a
// debugging aid behind the --dump-tree flag, not a stable output format.
func dumpTree(w io.Writer, image *ast.Image) {
	walkImage(image, func(node interface{}) {
		switch n := node.(type) {
		case *ast.Interface:
			kind := "interface"
			if n.CallbackInterface {
				kind = "callback interface"
			}
			fmt.Fprintf(w, "%s %s", kind, n.Name.Name)
			if n.Inherits != "" {
				fmt.Fprintf(w, " : %s", n.Inherits)
			}
			fmt.Fprintln(w)
		case *ast.Dictionary:
			fmt.Fprintf(w, "dictionary %s\n", n.Name.Name)
		case *ast.DictionaryMember:
			fmt.Fprintf(w, "  member %s: %s\n", n.Name.Name, n.Type)
		case *ast.Typedef:
			fmt.Fprintf(w, "typedef %s = %s\n", n.Name.Name, n.Type)
		case *ast.Callback:
			fmt.Fprintf(w, "callback %s: %s\n", n.Name.Name, n.Return)
		case *ast.Enum:
			fmt.Fprintf(w, "enum %s (%d values)\n", n.Name.Name, len(n.Values))
		case *ast.Attribute:
			mods := ""
			if n.Static {
				mods += " static"
			}
			if n.Readonly {
				mods += " readonly"
			}
			fmt.Fprintf(w, "  attribute %s: %s%s\n", n.Name.Name, n.Type, mods)
		case *ast.Operation:
			fmt.Fprintf(w, "  operation %s (%d signatures)\n", n.Name.Name, len(n.Signatures))
		case *ast.Constant:
			fmt.Fprintf(w, "  const %s: %s = %s\n", n.Name.Name, n.Type, n.Value)
		}
	})
}
