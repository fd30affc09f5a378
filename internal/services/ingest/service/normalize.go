package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
)

// labelChain folds unicode noise out of csv labels before matching
// 1 NFKC normalization
// 2 strip format chars ZWJ ZWNJ FEFF etc
// 3 fold fullwidth forms to ASCII
var labelChain = transform.Chain(
	norm.NFKC,
	runes.Remove(runes.In(unicode.Cf)),
	width.Fold,
)

// canonical maps folded lowercase labels onto the status constants the
// derived reports key on
var canonical = map[string]string{
	"submitted":   lifecycle.StatusSubmitted,
	"in progress": lifecycle.StatusInProgress,
	"in-progress": lifecycle.StatusInProgress,
	"inprogress":  lifecycle.StatusInProgress,
	"resolved":    lifecycle.StatusResolved,
}

// NormalizeStatus maps a raw csv status label onto its canonical form.
// Unknown labels are title cased and passed through with known false; the
// analyzer treats them as non terminal statuses
func NormalizeStatus(raw string) (label string, known bool) {
	s, _, err := transform.String(labelChain, raw)
	if err != nil {
		s = raw
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	if c, ok := canonical[strings.ToLower(s)]; ok {
		return c, true
	}
	return cases.Title(language.English).String(s), false
}
