package common

import (
	"path"
	"strings"
)

// PkgAlias returns the default package alias for an import path: its last
// element, skipping a major version suffix ("github.com/oklog/ulid/v2" is
// "ulid"). Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if dir := path.Dir(pkgPath); dir != "." && isMajorVersion(base) {
		return path.Base(dir)
	}

	return base
}

func isMajorVersion(s string) bool {
	digits, ok := strings.CutPrefix(s, "v")
	if !ok || digits == "" {
		return false
	}

	return strings.Trim(digits, "0123456789") == ""
}

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"
