// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "binding.cpp")

	changed, err := WriteFileIfChanged(path, []byte("one"))
	require.Nil(t, err)
	require.True(t, changed)

	changed, err = WriteFileIfChanged(path, []byte("one"))
	require.Nil(t, err)
	require.False(t, changed)

	changed, err = WriteFileIfChanged(path, []byte("two"))
	require.Nil(t, err)
	require.True(t, changed)

	content, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, "two", string(content))
}
