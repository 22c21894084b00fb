package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cargoOf(types ...CargoType) Cargo {
	c := Cargo{OrderID: 1}
	for _, typ := range types {
		c.Packages = append(c.Packages, Package{Volume: 1, Weight: 10, Type: typ})
	}
	return c
}

func TestCargoInternalCompatibility(t *testing.T) {
	tests := []struct {
		name  string
		types []CargoType
		want  bool
	}{
		{"hazmat with fragile", []CargoType{CargoHazmat, CargoFragile}, false},
		{"hazmat with refrigerated", []CargoType{CargoRefrigerated, CargoHazmat}, false},
		{"hazmat only", []CargoType{CargoHazmat, CargoHazmat}, true},
		{"standard with refrigerated", []CargoType{CargoStandard, CargoRefrigerated}, true},
		{"fragile with refrigerated", []CargoType{CargoFragile, CargoRefrigerated}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cargoOf(tt.types...).InternallyCompatible())
		})
	}
}

func TestCargoCompatibleWithIsSymmetric(t *testing.T) {
	hazmat := cargoOf(CargoHazmat)
	fragile := cargoOf(CargoFragile, CargoStandard)
	standard := cargoOf(CargoStandard)

	assert.False(t, hazmat.CompatibleWith(fragile))
	assert.False(t, fragile.CompatibleWith(hazmat))
	assert.True(t, hazmat.CompatibleWith(standard))
	assert.True(t, standard.CompatibleWith(fragile))
}

func TestCargoTotals(t *testing.T) {
	c := Cargo{Packages: []Package{
		{Volume: 1.5, Weight: 100, Type: CargoStandard},
		{Volume: 2.5, Weight: 50, Type: CargoStandard},
		{Volume: 1, Weight: 25, Type: CargoFragile},
	}}

	assert.Equal(t, 5.0, c.TotalVolume())
	assert.Equal(t, 175.0, c.TotalWeight())
	assert.Equal(t, []CargoType{CargoStandard, CargoFragile}, c.Types())
}

func TestParseCargoType(t *testing.T) {
	got, err := ParseCargoType(" HazMat ")
	require.NoError(t, err)
	assert.Equal(t, CargoHazmat, got)

	_, err = ParseCargoType("explosive")
	assert.Error(t, err)
}

func TestPackageTypeFromJSON(t *testing.T) {
	var c Cargo
	require.NoError(t, json.Unmarshal([]byte(`{"packages": [
		{"volume": 1, "weight": 10, "type": "Hazmat"},
		{"volume": 1, "weight": 10, "type": " FRAGILE "}]}`), &c))

	assert.Equal(t, []CargoType{CargoHazmat, CargoFragile}, c.Types())
	assert.False(t, c.InternallyCompatible())

	var p Package
	err := json.Unmarshal([]byte(`{"volume": 1, "weight": 10, "type": "explosive"}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}
