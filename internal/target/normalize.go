// SPDX-License-Identifier: Apache-2.0

package target

import (
	"net/url"
	"path/filepath"
)

// Normalize processes a given compile target and converts it into a standard
// form.
//
// The compiler allows targets to be any valid URI or file path. When the
// target is a file path or a file URI then we convert the paths to a rooted
// form so that they compose with the FileSystem implementations, which treat
// every path as relative to one of the configured roots. All non-file URIs
// are left as-is with the expectation that they will be handled by some other
// implementation.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		return filepath.Join("/", target)
	}
	return target
}
