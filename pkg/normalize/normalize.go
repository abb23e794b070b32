// Package normalize prepara texto para búsquedas insensibles a tildes y
// mayúsculas ("Cerámica" y "ceramica" deben coincidir).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // quitar marcas diacríticas
	norm.NFC,
)

// Search devuelve s en minúsculas, sin tildes y sin espacios sobrantes,
// listo para compararse con columnas normalizadas o patrones ILIKE.
func Search(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
