package csvimport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerColumns() []Column {
	isDigits := func(s string) bool {
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(s) == 11
	}
	return []Column{
		{Key: "ragione_sociale", Label: "Ragione Sociale", Required: true},
		{Key: "nome_referente", Label: "Referente"},
		{Key: "email", Label: "Email", Validate: func(s string) bool { return strings.Contains(s, "@") }},
		{Key: "telefono", Label: "Telefono"},
		{Key: "cellulare", Label: "Cellulare"},
		{Key: "partita_iva", Label: "Partita IVA", Validate: isDigits},
		{Key: "codice_fiscale", Label: "Codice Fiscale"},
		{Key: "indirizzo", Label: "Indirizzo"},
		{Key: "citta", Label: "Città"},
		{Key: "cap", Label: "CAP"},
		{Key: "provincia", Label: "Provincia"},
		{Key: "note", Label: "Note"},
	}
}

const header12 = "ragione_sociale;nome_referente;email;telefono;cellulare;partita_iva;codice_fiscale;indirizzo;citta;cap;provincia;note"

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b;c"))
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	assert.Equal(t, ';', DetectDelimiter("a;b,c"))
	assert.Equal(t, ';', DetectDelimiter("single"))
	assert.Equal(t, ',', DetectDelimiter("a;b,c,d"))
}

func TestParse_WrongColumnCountRejectsOnlyThatRow(t *testing.T) {
	input := strings.Join([]string{
		header12,
		"Fiori Rossi;Mario;info@rossi.it;0541;333;01234567890;;Via Roma 1;Rimini;47921;RN;",
		"Fiori Verdi;Anna;;;;;;;;;", // 11 fields
		"Fiori Blu;;;;;;;;;;;",
	}, "\n")

	res, err := Parse(strings.NewReader(input), customerColumns())
	require.NoError(t, err)

	assert.Equal(t, ';', res.Delimiter)
	assert.Len(t, res.Header, 12)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Fiori Rossi", res.Rows[0].Get("ragione_sociale"))
	assert.Equal(t, 2, res.Rows[0].Line)
	assert.Equal(t, "Fiori Blu", res.Rows[1].Get("ragione_sociale"))
	assert.Equal(t, []string{"Riga 3: numero colonne non corretto"}, res.Errors)
}

func TestParse_BOMBlankLinesQuotesAndCommas(t *testing.T) {
	input := "\uFEFF\"nome\",\"prezzo\"\r\n\r\n\"Leo IV\",'1200'\r\n   \r\nFior d'Acqua,5\r\n"

	res, err := Parse(strings.NewReader(input), []Column{
		{Key: "nome", Label: "Nome", Required: true},
		{Key: "prezzo", Label: "Prezzo", Required: true},
	})
	require.NoError(t, err)

	assert.Equal(t, ',', res.Delimiter)
	assert.Equal(t, []string{"nome", "prezzo"}, res.Header)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Leo IV", res.Rows[0].Get("nome"))
	assert.Equal(t, "1200", res.Rows[0].Get("prezzo"))
	assert.Equal(t, "Fior d'Acqua", res.Rows[1].Get("nome"))
	assert.Equal(t, 3, res.Rows[1].Line)
	assert.Empty(t, res.Errors)
}

func TestParse_RequiredAndValidate(t *testing.T) {
	input := strings.Join([]string{
		header12,
		";;;;;;;;;;;",
		"Fiori Gialli;;bad-email;;;123;;;;;;",
	}, "\n")

	res, err := Parse(strings.NewReader(input), customerColumns())
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, []string{
		`Riga 2: campo "Ragione Sociale" obbligatorio mancante`,
		`Riga 3: campo "Email" non valido`,
		`Riga 3: campo "Partita IVA" non valido`,
	}, res.Errors)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader("\uFEFF"+header12+"\n\n"), customerColumns())
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse(strings.NewReader(""), customerColumns())
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestTemplate(t *testing.T) {
	cols := customerColumns()[:2]
	out := string(Template(cols, []string{"Fiori Rossi", "Mario"}))

	assert.True(t, strings.HasPrefix(out, "\uFEFF"))
	assert.Equal(t, "\uFEFFragione_sociale;nome_referente\nFiori Rossi;Mario\n", out)
	assert.Equal(t, []string{"ragione_sociale"}, RequiredKeys(customerColumns()))
}

func TestSummary(t *testing.T) {
	var errs []string
	for i := 0; i < 14; i++ {
		errs = append(errs, fmt.Sprintf("Riga %d: errore", i+2))
	}

	shown, rest := Summary(errs, DefaultErrorCap)
	assert.Len(t, shown, 10)
	assert.Equal(t, 4, rest)

	shown, rest = Summary(errs[:3], DefaultErrorCap)
	assert.Len(t, shown, 3)
	assert.Zero(t, rest)
}
