package core

import (
	"regexp"
	"strings"

	"github.com/lesiontrack/lesiontrack/schema"
)

// accentReplacements maps common unaccented spellings to their canonical
// accented forms so that "lesao a" and "lesão a" normalize identically.
var accentReplacements = []struct {
	from, to string
}{
	{"lesao", "lesão"},
	{"nodulo", "nódulo"},
	{"metastase", "metástase"},
	{"tumor", "tumor"},
	{"massa", "massa"},
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// typeIdentifierRe extracts the lesion type and optional identifier from a
	// lowercased name, e.g. "lesão a" -> ("lesão", "a").
	typeIdentifierRe = regexp.MustCompile(`(lesão|nódulo|metástase|tumor|massa)\s*([a-z0-9]+)?`)

	// canonicalFormRe matches names already in the preferred "<type> <id>" form.
	canonicalFormRe = regexp.MustCompile(`(lesão|nódulo|metástase|tumor|massa)\s+[a-z0-9]+`)
)

// romanNumerals maps roman identifiers to their arabic equivalents so that
// "nódulo ii" and "nódulo 2" resolve to the same lesion.
var romanNumerals = map[string]string{
	"i": "1", "ii": "2", "iii": "3", "iv": "4", "v": "5",
}

// Resolver groups inconsistently written lesion names into canonical identities.
type Resolver struct {
	threshold float64
}

// NewResolver creates a Resolver with the default similarity threshold.
func NewResolver() *Resolver {
	return &Resolver{threshold: schema.SimilarityThreshold}
}

// Resolve maps each raw lesion name to a canonical name. Names are processed
// in input order and assigned to the first existing cluster whose founding
// member they match; unmatched names found new clusters. The mapping is
// therefore order-sensitive, which mirrors how reports are read.
func (r *Resolver) Resolve(rawNames []string) map[string]string {
	var clusters [][]string

	for _, name := range rawNames {
		placed := false
		for i, cluster := range clusters {
			if r.shouldGroup(name, cluster[0]) {
				clusters[i] = append(clusters[i], name)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []string{name})
		}
	}

	mapping := make(map[string]string, len(rawNames))
	for _, cluster := range clusters {
		canonical := canonicalName(cluster)
		for _, member := range cluster {
			mapping[member] = canonical
		}
	}
	return mapping
}

// shouldGroup decides whether two raw names denote the same lesion.
func (r *Resolver) shouldGroup(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == nb {
		return true
	}
	if similarityRatio(na, nb) >= r.threshold {
		return true
	}
	return patternsMatch(a, b)
}

// normalizeName lowercases a name, collapses whitespace, and restores
// accented spellings of the lesion vocabulary.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	for _, rep := range accentReplacements {
		s = strings.ReplaceAll(s, rep.from, rep.to)
	}
	return s
}

// patternsMatch compares the "<type> <identifier>" structure of two names.
// Both must carry the same lesion type and equivalent identifiers, where
// roman and arabic numerals are treated as equivalent.
func patternsMatch(a, b string) bool {
	ta, ia := extractPattern(a)
	tb, ib := extractPattern(b)
	if ta == "" || tb == "" || ta != tb {
		return false
	}
	if ia == "" || ib == "" {
		return false
	}
	return identifiersEqual(ia, ib)
}

// extractPattern pulls the lesion type and identifier out of a raw name.
// The name is only lowercased, not accent-folded, so unaccented spellings
// such as "nodulo" carry no pattern.
func extractPattern(name string) (lesionType, identifier string) {
	m := typeIdentifierRe.FindStringSubmatch(strings.ToLower(name))
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// identifiersEqual compares identifiers case-insensitively, mapping roman
// numerals to arabic before comparing.
func identifiersEqual(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	if v, ok := romanNumerals[a]; ok {
		a = v
	}
	if v, ok := romanNumerals[b]; ok {
		b = v
	}
	return a == b
}

// canonicalName selects the display name for a cluster of raw names.
// A single-member cluster keeps its name verbatim. Otherwise the first
// member whose lowercased form is already "<type> <id>" wins; failing
// that, the shortest member (ties broken by cluster order) is used.
func canonicalName(cluster []string) string {
	if len(cluster) == 1 {
		return cluster[0]
	}
	for _, name := range cluster {
		if canonicalFormRe.MatchString(strings.ToLower(name)) {
			return name
		}
	}
	best := cluster[0]
	for _, name := range cluster[1:] {
		if len(name) < len(best) {
			best = name
		}
	}
	return best
}

// similarityRatio computes the similarity between two strings as
// 2*M / (len(a)+len(b)), where M is the total length of all matching
// blocks found by recursively locating the longest common substring.
// Identical strings score 1.0 and fully distinct strings score 0.0.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matches := matchingBlockLength(ra, rb)
	return 2.0 * float64(matches) / float64(total)
}

// matchingBlockLength returns the total number of runes covered by the
// matching blocks between a and b. The longest common substring splits
// both inputs; the halves on each side are matched recursively.
func matchingBlockLength(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	left := matchingBlockLength(a[:ai], b[:bi])
	right := matchingBlockLength(a[ai+size:], b[bi+size:])
	return left + size + right
}

// longestCommonSubstring finds the earliest longest run of runes common to
// a and b, returning its start offsets and length.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] holds the length of the common suffix ending at b[j-1]
	// for the current row of a.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			if a[i] == b[j] {
				curr[j+1] = prev[j] + 1
				if curr[j+1] > size {
					size = curr[j+1]
					ai = i - size + 1
					bi = j - size + 1
				}
			} else {
				curr[j+1] = 0
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return ai, bi, size
}
