package consolidate

import (
	"sort"
	"strings"
	"unicode"
)

var (
	defaultExcludedPrefixes = []string{"admin-"}
	defaultUtilityPrefixes  = []string{"flex-", "grid-", "text-", "bg-", "p-", "m-"}
)

// DefaultExcludedPrefixes returns the prefixes of scoped names that should
// not become canonical.
func DefaultExcludedPrefixes() []string {
	return append([]string(nil), defaultExcludedPrefixes...)
}

// DefaultUtilityPrefixes returns the prefixes of preferred utility names.
func DefaultUtilityPrefixes() []string {
	return append([]string(nil), defaultUtilityPrefixes...)
}

// CanonicalName picks the representative of a group. Names with an excluded
// prefix are only considered when every name has one. The winner has no
// digits if possible, then a utility prefix, then is shortest, then sorts
// first.
func CanonicalName(names, excluded, utility []string) string {
	if len(names) == 0 {
		return ""
	}

	candidates := append([]string(nil), names...)
	sort.Strings(candidates)

	var allowed []string
	for _, name := range candidates {
		if !hasPrefix(name, excluded) {
			allowed = append(allowed, name)
		}
	}
	if len(allowed) == 0 {
		allowed = candidates
	}

	best := allowed[0]
	for _, name := range allowed[1:] {
		if preferred(name, best, utility) {
			best = name
		}
	}
	return best
}

func preferred(a, b string, utility []string) bool {
	if da, db := hasDigit(a), hasDigit(b); da != db {
		return !da
	}
	if ua, ub := hasPrefix(a, utility), hasPrefix(b, utility); ua != ub {
		return ua
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
