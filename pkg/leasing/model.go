// Package leasing resolves display-unit product names to the Grenke leasing
// models they belong to and holds the contract text printed for each model.
package leasing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Model is one of the display units offered through Grenke leasing.
type Model int

const (
	Unknown Model = iota
	Leo2
	Leo3
	Leo4
	Leo5
	Titano
)

// Models lists the known models in match priority order.
var Models = []Model{Leo2, Leo3, Leo4, Leo5, Titano}

var keys = [...]string{"default", "leo2", "leo3", "leo4", "leo5", "titano"}

// Key is the normalized token for the model, "default" for Unknown.
func (m Model) Key() string {
	if m < Unknown || m > Titano {
		return keys[Unknown]
	}
	return keys[m]
}

func (m Model) String() string { return m.Key() }

// ParseModel maps a key back to a Model. Unrecognised keys give Unknown.
func ParseModel(key string) Model {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, m := range Models {
		if m.Key() == key {
			return m
		}
	}
	return Unknown
}

// DiscountRate is the fixed reduction applied to list prices in leasing quotes.
var DiscountRate = decimal.NewFromInt(5)

// DiscountedPrice takes pct percent off price. A non-positive pct applies
// DiscountRate.
func DiscountedPrice(price, pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		pct = DiscountRate
	}
	hundred := decimal.NewFromInt(100)
	return price.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
}

var (
	romanIII   = regexp.MustCompile(`\biii\b`)
	romanIV    = regexp.MustCompile(`\biv\b`)
	romanV     = regexp.MustCompile(`\bv\b`)
	romanII    = regexp.MustCompile(`\bii\b`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)
)

// Normalize lowercases the name, folds "leonardo" to "leo", rewrites the
// roman numerals II to V as digits and drops everything but [a-z0-9].
// Numerals are rewritten iii, iv, v, ii in that order so "iv" never turns
// into "i5". The pass is repeated until the output is stable, since stripping
// can join fragments such as "leo nardo", so Normalize(Normalize(s)) ==
// Normalize(s) always holds.
func Normalize(name string) string {
	s := normalizePass(name)
	for {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "leonardo", "leo")
	s = romanIII.ReplaceAllString(s, "3")
	s = romanIV.ReplaceAllString(s, "4")
	s = romanV.ReplaceAllString(s, "5")
	s = romanII.ReplaceAllString(s, "2")
	return nonAlnumRe.ReplaceAllString(s, "")
}

// Match returns the first model whose key occurs in the normalized name.
func Match(name string) Model {
	n := Normalize(name)
	if n == "" {
		return Unknown
	}
	for _, m := range Models {
		if strings.Contains(n, m.Key()) {
			return m
		}
	}
	return Unknown
}

// Candidate is a catalog row that may represent a model.
type Candidate struct {
	Code string
	Name string
}

// AmbiguityFunc is told when more than one candidate matched a model.
type AmbiguityFunc func(m Model, chosen Candidate, matched int)

// Resolve picks the catalog row that best represents m. Candidates whose code
// is mapped to m in codes win outright. Otherwise the earliest occurrence of
// the model token wins, then the least text left once the token is removed,
// then the shortest normalized name. Ties keep catalog order.
func Resolve(m Model, candidates []Candidate, codes map[string]Model, onAmbiguous AmbiguityFunc) (Candidate, bool) {
	if m == Unknown {
		return Candidate{}, false
	}

	for _, c := range candidates {
		if mapped, ok := codes[strings.ToUpper(strings.TrimSpace(c.Code))]; ok && mapped == m {
			return c, true
		}
	}

	type scored struct {
		c         Candidate
		index     int
		remaining int
		length    int
	}
	token := m.Key()
	var matched []scored
	for _, c := range candidates {
		n := Normalize(c.Name)
		idx := strings.Index(n, token)
		if idx < 0 {
			continue
		}
		matched = append(matched, scored{
			c:         c,
			index:     idx,
			remaining: len(strings.ReplaceAll(n, token, "")),
			length:    len(n),
		})
	}
	if len(matched) == 0 {
		return Candidate{}, false
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.index != b.index {
			return a.index < b.index
		}
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
		return a.length < b.length
	})

	if len(matched) > 1 && onAmbiguous != nil {
		onAmbiguous(m, matched[0].c, len(matched))
	}
	return matched[0].c, true
}

// Detect returns the index and model of the first name that maps to a known
// model, or -1 and Unknown.
func Detect(names []string) (int, Model) {
	for i, n := range names {
		if m := Match(n); m != Unknown {
			return i, m
		}
	}
	return -1, Unknown
}
