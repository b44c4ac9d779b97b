// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileIfChanged writes content to path only when the existing file
// content differs byte-for-byte. An absent file always counts as changed. The
// returned bool reports whether a write actually happened, which is the
// signal downstream build steps use to avoid spurious rebuilds.
func WriteFileIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fsErr(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModeDir|0o755); err != nil {
		return false, fsErr(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fsErr(path, err)
	}
	return true, nil
}
