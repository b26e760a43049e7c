package format

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	partitaIVARe     = regexp.MustCompile(`^[0-9]{11}$`)
	codiceFiscaleRe  = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)
	emailRe          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	italianProvinces = map[string]struct{}{}
)

// Province lists the Italian province codes accepted on customer records.
var Province = []string{
	"AG", "AL", "AN", "AO", "AR", "AP", "AT", "AV", "BA", "BT", "BL", "BN", "BG", "BI", "BO", "BZ",
	"BS", "BR", "CA", "CL", "CB", "CI", "CE", "CT", "CZ", "CH", "CO", "CS", "CR", "KR", "CN", "EN",
	"FM", "FE", "FI", "FG", "FC", "FR", "GE", "GO", "GR", "IM", "IS", "SP", "AQ", "LT", "LE", "LC",
	"LI", "LO", "LU", "MC", "MN", "MS", "MT", "ME", "MI", "MO", "MB", "NA", "NO", "NU", "OT", "OR",
	"PD", "PA", "PR", "PV", "PG", "PU", "PE", "PC", "PI", "PT", "PN", "PZ", "PO", "RG", "RA", "RC",
	"RE", "RI", "RN", "RM", "RO", "SA", "VS", "SS", "SV", "SI", "SR", "SO", "TA", "TE", "TR", "TO",
	"OG", "TP", "TN", "TV", "TS", "UD", "VA", "VE", "VB", "VC", "VR", "VV", "VI", "VT",
}

func init() {
	for _, p := range Province {
		italianProvinces[p] = struct{}{}
	}
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidPartitaIVA reports whether s is an 11 digit VAT number, ignoring whitespace.
func ValidPartitaIVA(s string) bool {
	return partitaIVARe.MatchString(stripSpaces(s))
}

// ValidCodiceFiscale reports whether s is a 16 character Italian tax code.
// Whitespace is ignored and letters are matched case-insensitively.
func ValidCodiceFiscale(s string) bool {
	return codiceFiscaleRe.MatchString(strings.ToUpper(stripSpaces(s)))
}

// ValidEmail performs the same shallow check the data entry forms use.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// ValidProvincia reports whether s is a known province code.
func ValidProvincia(s string) bool {
	_, ok := italianProvinces[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}
