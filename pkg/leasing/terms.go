package leasing

import "strings"

const termsCommon = "Il canone è calcolato sul prezzo di listino scontato del 5% ed è soggetto " +
	"ad approvazione della pratica da parte di GRENKE Locazione S.r.l. " +
	"Al termine del contratto il cliente può rinnovare la locazione, restituire l'espositore " +
	"oppure riscattarlo al valore residuo concordato. Installazione e trasporto esclusi salvo diverso accordo."

var defaultTerms = map[Model]string{
	Leo2: "Espositore refrigerato LEO 2: locazione operativa GRENKE con durata 36, 48 o 60 mesi, " +
		"canone mensile anticipato. " + termsCommon,
	Leo3: "Espositore refrigerato LEO 3: locazione operativa GRENKE con durata 36, 48 o 60 mesi, " +
		"canone mensile anticipato. " + termsCommon,
	Leo4: "Espositore refrigerato LEO 4: locazione operativa GRENKE con durata 48 o 60 mesi, " +
		"canone mensile anticipato. " + termsCommon,
	Leo5: "Espositore refrigerato LEO 5: locazione operativa GRENKE con durata 48 o 60 mesi, " +
		"canone mensile anticipato. " + termsCommon,
	Titano: "Espositore refrigerato TITANO: locazione operativa GRENKE con durata 60 mesi, " +
		"canone mensile anticipato, assicurazione all-risk inclusa per il primo anno. " + termsCommon,
	Unknown: "Locazione operativa tramite GRENKE Locazione S.r.l. Durata e canone secondo offerta " +
		"allegata. " + termsCommon,
}

// TermsBook holds the contract text printed under leasing quotes.
type TermsBook struct {
	texts map[Model]string
}

// NewTermsBook returns the built-in texts with any overrides applied.
// Overrides are keyed by model key ("leo2", ..., "default"); blank values
// are ignored.
func NewTermsBook(overrides map[string]string) *TermsBook {
	texts := make(map[Model]string, len(defaultTerms))
	for m, t := range defaultTerms {
		texts[m] = t
	}
	for k, t := range overrides {
		if strings.TrimSpace(t) == "" {
			continue
		}
		texts[ParseModel(k)] = t
	}
	return &TermsBook{texts: texts}
}

// Terms returns the text for m, falling back to the default block.
func (b *TermsBook) Terms(m Model) string {
	if t, ok := b.texts[m]; ok {
		return t
	}
	return b.texts[Unknown]
}

// Terms returns the built-in text for m.
func Terms(m Model) string {
	if t, ok := defaultTerms[m]; ok {
		return t
	}
	return defaultTerms[Unknown]
}
