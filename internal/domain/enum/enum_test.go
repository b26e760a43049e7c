package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusBozza, OrderStatusConfermato, true},
		{OrderStatusBozza, OrderStatusAnnullato, true},
		{OrderStatusBozza, OrderStatusEvaso, false},
		{OrderStatusConfermato, OrderStatusEvaso, true},
		{OrderStatusConfermato, OrderStatusBozza, false},
		{OrderStatusEvaso, OrderStatusAnnullato, false},
		{OrderStatusAnnullato, OrderStatusBozza, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, OrderStatusEvaso.IsTerminal())
	assert.True(t, OrderStatusAnnullato.IsTerminal())
	assert.False(t, OrderStatusBozza.IsTerminal())
}

func TestAllowedTransitionsIsACopy(t *testing.T) {
	next := OrderStatusBozza.AllowedTransitions()
	next[0] = OrderStatusEvaso
	assert.Equal(t, OrderStatusConfermato, OrderStatusBozza.AllowedTransitions()[0])
}

func TestOrderStatusJSON(t *testing.T) {
	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"confermato"`), &s))
	assert.Equal(t, OrderStatusConfermato, s)
	assert.Equal(t, "Confermato", s.Label())

	assert.Error(t, json.Unmarshal([]byte(`"spedito"`), &s))
}

func TestOrderStatusScanNull(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusBozza, s)
	assert.Error(t, s.Scan(42))
}

func TestParseFormType(t *testing.T) {
	f, err := ParseFormType(" gemme ")
	require.NoError(t, err)
	assert.Equal(t, FormTypeGemme, f)
	assert.False(t, f.AllowsLeasing())

	f, err = ParseFormType("ESPOSITORI")
	require.NoError(t, err)
	assert.True(t, f.AllowsLeasing())
	assert.Contains(t, f.CategoryNames(), "Leasing")

	_, err = ParseFormType("vasi")
	assert.Error(t, err)
}

func TestUnitDefaults(t *testing.T) {
	var u Unit
	v, err := u.Value()
	require.NoError(t, err)
	assert.Equal(t, "pz", v)

	assert.True(t, UnitMetroQuadrato.IsValid())
	assert.False(t, Unit("litri").IsValid())
	assert.Equal(t, "Kilogrammo", UnitKilogrammo.Label())
}

func TestSaleModeLabel(t *testing.T) {
	assert.Equal(t, "Leasing", SaleModeLeasing.Label())
	assert.Equal(t, "Diretto", SaleModeDiretto.Label())
	assert.False(t, SaleMode("noleggio").IsValid())
	assert.True(t, OrderTypeEspositori.IsValid())
}
