// SPDX-License-Identifier: Apache-2.0

//go:build windows

package compiler

import (
	"path/filepath"
	"strings"
)

func getDefaultRoots(lookup func(string) (string, bool)) []string {
	if widlPath, ok := lookup("WIDL_PATH"); ok && widlPath != "" {
		return strings.Split(widlPath, ";")
	}
	userprofile, _ := lookup("USERPROFILE")
	systemdrive, _ := lookup("SystemDrive")

	dataDirs := []string{
		filepath.Join(userprofile, "AppData", "Local", "widl", "idl"),
		filepath.Join(systemdrive, "ProgramData", "widl", "idl"),
	}

	return dataDirs
}
