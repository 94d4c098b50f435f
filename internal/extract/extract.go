// Package extract pulls a sale out of a transcript with one fixed phrase rule
// per locale. Rules are literal: no synonyms, no reordering.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	word  = `[\p{L}\p{M}\p{N}_]`
	words = `[\p{L}\p{M}\p{N}_\s]`
)

// rules maps a locale to "<name> <verb> <article> <product> <for> <price>".
var rules = map[string]*regexp.Regexp{
	"pt": regexp.MustCompile(`(?i)(` + word + `+)\s+comprou\s+(?:uma|um)\s+(` + words + `+?)\s+por\s+(` + words + `+)`),
	"en": regexp.MustCompile(`(?i)(` + word + `+)\s+bought\s+(?:an|a)\s+(` + words + `+?)\s+for\s+(` + words + `+)`),
}

// Fields is the result of a successful match.
type Fields struct {
	Buyer   string
	Product string
	Price   string
}

type Extractor struct {
	locale  string
	pattern *regexp.Regexp
}

// New returns the extractor for locale ("pt" or "en").
func New(locale string) (*Extractor, error) {
	pattern, ok := rules[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported extraction locale %q (supported: %s)", locale, strings.Join(Locales(), ", "))
	}
	return &Extractor{locale: locale, pattern: pattern}, nil
}

// Locales lists the supported locales in sorted order.
func Locales() []string {
	keys := lo.Keys(rules)
	sort.Strings(keys)
	return keys
}

func (e *Extractor) Locale() string {
	return e.locale
}

// Extract applies the rule to transcript. ok is false when the phrase is not
// present; that is a normal outcome, not an error.
func (e *Extractor) Extract(transcript string) (fields Fields, ok bool) {
	m := e.pattern.FindStringSubmatch(transcript)
	if m == nil {
		return Fields{}, false
	}

	fields = Fields{
		Buyer:   m[1],
		Product: collapse(m[2]),
		Price:   collapse(m[3]),
	}
	if fields.Product == "" || fields.Price == "" {
		return Fields{}, false
	}
	return fields, true
}

// collapse trims and folds inner whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
