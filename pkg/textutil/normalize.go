package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeMarks elimina las marcas diacríticas tras descomponer en NFD.
var removeMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch normaliza un término de búsqueda: minúsculas, sin tildes,
// sin espacios sobrantes. "Panél  Solar" -> "panel solar".
// Permite que "inversor híbrido" y "INVERSOR HIBRIDO" encuentren lo mismo.
func NormalizeSearch(s string) string {
	out, _, err := transform.String(removeMarks, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
