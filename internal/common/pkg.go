package common

import (
	"strconv"
	"strings"
)

// PkgAlias returns the name a package path is conventionally imported as: its last
// element without a version, so both "example.com/pgx/v5" and "gopkg.in/yaml.v3"
// keep only the name.
func PkgAlias(pkgPath string) string {
	elems := strings.Split(strings.Trim(pkgPath, "/"), "/")

	alias := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(alias) {
		alias = elems[len(elems)-2]
	}

	if i := strings.LastIndex(alias, ".v"); i > 0 {
		if _, err := strconv.Atoi(alias[i+2:]); err == nil {
			alias = alias[:i]
		}
	}

	return alias
}

func isMajorVersion(elem string) bool {
	n, err := strconv.Atoi(strings.TrimPrefix(elem, "v"))

	return strings.HasPrefix(elem, "v") && err == nil && n >= 2
}
