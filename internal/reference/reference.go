// Package reference holds the fixed vocabularies of the office: the
// municipalities of the constituency, electoral districts, ESSO class
// letters, and the public holiday calendars used to seed reminders.
package reference

// Municipalities of the constituency. ΑΛΛΟ catches everything outside it.
var Municipalities = []string{
	"ΠΑΥΛΟΥ ΜΕΛΑ",
	"ΚΟΡΔΕΛΙΟΥ-ΕΥΟΣΜΟΥ",
	"ΑΜΠΕΛΟΚΗΠΩΝ-ΜΕΝΕΜΕΝΗΣ",
	"ΝΕΑΠΟΛΗΣ-ΣΥΚΕΩΝ",
	"ΘΕΣΣΑΛΟΝΙΚΗΣ",
	"ΚΑΛΑΜΑΡΙΑΣ",
	"ΑΛΛΟ",
}

// ElectoralDistricts of Thessaloniki.
var ElectoralDistricts = []string{
	"Α ΘΕΣΣΑΛΟΝΙΚΗΣ",
	"Β ΘΕΣΣΑΛΟΝΙΚΗΣ",
}

// EssoLetters are the conscription class letters in call-up order.
var EssoLetters = []string{"Α", "Β", "Γ", "Δ", "Ε", "ΣΤ"}

// StatUnknown is the bucket grouped statistics fold NULL/empty keys into.
const StatUnknown = "ΑΓΝΩΣΤΟ"

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ValidMunicipality accepts empty (unset) or one of the known values.
func ValidMunicipality(v string) bool {
	return v == "" || contains(Municipalities, v)
}

// ValidElectoralDistrict accepts empty (unset) or one of the known values.
func ValidElectoralDistrict(v string) bool {
	return v == "" || contains(ElectoralDistricts, v)
}

// ValidEssoLetter accepts empty (unset) or one of the class letters.
func ValidEssoLetter(v string) bool {
	return v == "" || contains(EssoLetters, v)
}
