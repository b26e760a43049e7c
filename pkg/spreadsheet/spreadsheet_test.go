package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	data, err := Build(
		Sheet{
			Name:   "Ordini",
			Header: []string{"Numero", "Cliente", "Totale"},
			Rows: [][]any{
				{1, "Fiori Rossi", 225.5},
				{2, "Garden Blu", 90.0},
			},
			Widths: []float64{10, 30},
		},
		Sheet{Name: "Righe", Header: []string{"Codice"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ordini", "Righe"}, f.GetSheetList())

	rows, err := f.GetRows("Ordini")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Numero", "Cliente", "Totale"}, rows[0])
	assert.Equal(t, "Fiori Rossi", rows[1][1])
	assert.Equal(t, "2", rows[2][0])

	w, err := f.GetColWidth("Ordini", "B")
	require.NoError(t, err)
	assert.Equal(t, 30.0, w)
}

func TestBuildWithoutSheets(t *testing.T) {
	_, err := Build()
	assert.Error(t, err)
}
