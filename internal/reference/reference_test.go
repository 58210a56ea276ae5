package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	assert.True(t, ValidMunicipality(""))
	assert.True(t, ValidMunicipality("ΚΑΛΑΜΑΡΙΑΣ"))
	assert.True(t, ValidMunicipality("ΑΛΛΟ"))
	assert.False(t, ValidMunicipality("ΑΘΗΝΑ"))

	assert.True(t, ValidElectoralDistrict("Α ΘΕΣΣΑΛΟΝΙΚΗΣ"))
	assert.False(t, ValidElectoralDistrict("Γ ΘΕΣΣΑΛΟΝΙΚΗΣ"))

	assert.True(t, ValidEssoLetter("ΣΤ"))
	assert.False(t, ValidEssoLetter("Ζ"))
}

func TestHolidaysForYear(t *testing.T) {
	h := HolidaysForYear(2025)
	assert.Len(t, h, 13)
	assert.Equal(t, "Πρωτοχρονιά", h[0].Name)

	assert.Nil(t, HolidaysForYear(1999))
}
