// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity resolves raw, inconsistent university names to
// canonical identities. Matching is pure: a fixed reference table plus
// a curated alias table, no network and no mutation.
package identity

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/unifin/pkg/types"
)

// ErrUnresolvedIdentity is returned when no match clears the confidence
// threshold. Callers decide whether to create a new identity or skip the
// record; the normalizer never guesses below threshold.
var ErrUnresolvedIdentity = errors.New("unresolved identity")

// fuzzyThreshold is the minimum Jaro-Winkler similarity for the final
// matching tier. Tuned high: a wrong merge pollutes every later run,
// whereas an unresolved name is merely skipped and logged.
const fuzzyThreshold = 0.93

// Normalizer maps raw university names to canonical identities.
// It is safe for concurrent use; all state is immutable after New.
type Normalizer struct {
	list     []types.University
	byFolded map[string]int
	aliases  map[string]int
}

// New builds a Normalizer over the embedded reference table.
func New() *Normalizer {
	n := &Normalizer{
		list:     referenceTable(),
		byFolded: make(map[string]int),
		aliases:  make(map[string]int),
	}
	sort.Slice(n.list, func(i, j int) bool { return n.list[i].Name < n.list[j].Name })

	for i, u := range n.list {
		n.byFolded[fold(u.Name)] = i
	}
	for raw, canonical := range aliasTable {
		if i, ok := n.byFolded[fold(canonical)]; ok {
			n.aliases[raw] = i
		}
	}
	return n
}

// Normalize resolves a raw name to its canonical University. The match
// policy is tiered: exact, folded (case/whitespace/punctuation
// insensitive with abbreviation expansion), alias table, parent
// institution after stripping campus or department qualifiers,
// substring, and finally fuzzy similarity above fuzzyThreshold.
func (n *Normalizer) Normalize(raw string) (types.University, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.University{}, eris.Wrap(ErrUnresolvedIdentity, "empty name")
	}

	folded := fold(raw)
	if i, ok := n.byFolded[folded]; ok {
		return n.list[i], nil
	}
	if i, ok := n.aliases[folded]; ok {
		return n.list[i], nil
	}

	// Campus/department qualifiers resolve to the parent institution:
	// "University of X, Y Campus" is still University of X.
	if stripped := stripQualifier(folded); stripped != folded {
		if i, ok := n.byFolded[stripped]; ok {
			return n.list[i], nil
		}
		if i, ok := n.aliases[stripped]; ok {
			return n.list[i], nil
		}
	}

	// Substring tier: a folded canonical name contained in the raw name
	// (or vice versa) is accepted when long enough to be unambiguous.
	if i, ok := n.substringMatch(folded); ok {
		return n.list[i], nil
	}

	if i, ok := n.fuzzyMatch(folded); ok {
		return n.list[i], nil
	}

	return types.University{}, eris.Wrapf(ErrUnresolvedIdentity, "no match for %q", raw)
}

// Lookup returns the canonical University for an already-canonical name.
func (n *Normalizer) Lookup(canonical string) (types.University, bool) {
	i, ok := n.byFolded[fold(canonical)]
	if !ok {
		return types.University{}, false
	}
	return n.list[i], true
}

// Universities returns the full reference table sorted by name.
func (n *Normalizer) Universities() []types.University {
	out := make([]types.University, len(n.list))
	copy(out, n.list)
	return out
}

func (n *Normalizer) substringMatch(folded string) (int, bool) {
	// Require a reasonably long needle so fragments like "london" or
	// "arts" cannot pin a single institution.
	const minLen = 12

	match, count := -1, 0
	for i := range n.list {
		cf := fold(n.list[i].Name)
		if len(cf) >= minLen && strings.Contains(folded, cf) {
			match, count = i, count+1
			continue
		}
		if len(folded) >= minLen && strings.Contains(cf, folded) {
			match, count = i, count+1
		}
	}
	if count == 1 {
		return match, true
	}
	return -1, false
}

func (n *Normalizer) fuzzyMatch(folded string) (int, bool) {
	best, bestScore := -1, 0.0
	for i := range n.list {
		score := matchr.JaroWinkler(folded, fold(n.list[i].Name), false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return -1, false
}

// abbreviations expanded during folding so that "Univ. of Cambridge"
// and "University of Cambridge" fold identically.
var abbreviations = map[string]string{
	"univ": "university",
	"uni":  "university",
	"&":    "and",
}

// fold lowercases, strips punctuation, collapses whitespace, drops a
// leading article and expands common abbreviations.
func fold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '&':
			b.WriteString(" and ")
		case r == '-' || r == '_':
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	if len(words) > 1 && words[0] == "the" {
		words = words[1:]
	}
	for i, w := range words {
		if full, ok := abbreviations[w]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

var qualifierSuffix = regexp.MustCompile(`\s+\w[\w\s]*?\bcampus$`)

// stripQualifier removes a trailing campus qualifier from a folded name.
func stripQualifier(folded string) string {
	return strings.TrimSpace(qualifierSuffix.ReplaceAllString(folded, ""))
}
