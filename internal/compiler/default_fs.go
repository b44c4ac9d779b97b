// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"path/filepath"

	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/idl"
)

// NewDefaultFS layers the shared IDL roots under the host file system, so a
// bare name like "dom.idl" is found in an installed root while absolute and
// relative paths keep working unchanged.
func NewDefaultFS(lookup func(string) (string, bool)) (idl.FileSystem, error) {
	roots := append(getDefaultRoots(lookup), "/")
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			return nil, errAbs
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}
