package enum

import (
	"fmt"
	"strings"
)

// FormType is the kind of blank paper order form
type FormType string

const (
	FormTypeEspositori FormType = "Espositori"
	FormTypeRicambi    FormType = "Ricambi"
	FormTypeGemme      FormType = "Gemme"
	FormTypeNido       FormType = "Nido"
)

var FormTypes = []FormType{FormTypeEspositori, FormTypeRicambi, FormTypeGemme, FormTypeNido}

// formCategories maps each form to the category names whose products it
// pre-prints.
var formCategories = map[FormType][]string{
	FormTypeEspositori: {"ESPOSITORI", "Diretti", "Leasing", "Nuovi", "Usati"},
	FormTypeRicambi:    {"Ricambi"},
	FormTypeGemme:      {"Gemme"},
	FormTypeNido:       {"Nido"},
}

func (f FormType) String() string {
	return string(f)
}

// CategoryNames returns the categories listed on the form
func (f FormType) CategoryNames() []string {
	names := formCategories[f]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// AllowsLeasing reports whether the form can carry a leasing terms box
func (f FormType) AllowsLeasing() bool {
	return f == FormTypeEspositori
}

// ParseFormType matches case-insensitively, so "gemme" is FormTypeGemme.
func ParseFormType(v string) (FormType, error) {
	for _, f := range FormTypes {
		if strings.EqualFold(string(f), strings.TrimSpace(v)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown form type %q", v)
}
