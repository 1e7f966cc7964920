package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSpecialties(t *testing.T) {
	got := NormalizeSpecialties([]string{" Corte ", "BARBA", "corte", "", "  ", "Sobrancelha"})
	assert.Equal(t, []string{"corte", "barba", "sobrancelha"}, got)

	assert.Empty(t, NormalizeSpecialties(nil))
	assert.Empty(t, NormalizeSpecialties([]string{"", "   "}))
}

func TestSpecialtyList_UnmarshalJSON(t *testing.T) {
	var fromArray SpecialtyList
	require.NoError(t, json.Unmarshal([]byte(`[" Corte ", "Barba", "corte"]`), &fromArray))
	assert.Equal(t, SpecialtyList{"corte", "barba"}, fromArray)

	// clientes antigos mandam CSV numa string única
	var fromCSV SpecialtyList
	require.NoError(t, json.Unmarshal([]byte(`"Corte, barba ,CORTE, sobrancelha"`), &fromCSV))
	assert.Equal(t, SpecialtyList{"corte", "barba", "sobrancelha"}, fromCSV)

	var invalid SpecialtyList
	assert.Error(t, json.Unmarshal([]byte(`42`), &invalid))
}

func TestBarberProfile_SpecialtiesRoundTrip(t *testing.T) {
	var p BarberProfile
	p.SetSpecialties([]string{" Corte ", "Barba", "corte"})

	assert.Equal(t, "corte,barba", p.SpecialtiesCSV)
	assert.Equal(t, []string{"corte", "barba"}, p.Specialties())
}
