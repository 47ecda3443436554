package pydist

import (
	"regexp"
	"strings"
)

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// NormalizeName folds a project name the way package indexes compare them:
// runs of "-", "_" and "." become a single "-", and case is ignored.
func NormalizeName(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// splitEntryName derives a name and version from a metadata entry such as
// "demo-1.2.3.dist-info" or "demo-1.2.3-py3.11.egg-info". Egg-info entries
// created by develop installs carry no version ("demo.egg-info").
func splitEntryName(entry string, kind Kind) (name, version string) {
	stem := strings.TrimSuffix(entry, "."+string(kind))
	name, rest, found := strings.Cut(stem, "-")
	if !found {
		return name, ""
	}
	version, _, _ = strings.Cut(rest, "-py")
	return name, version
}
