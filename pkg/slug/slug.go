package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrExhausted indica que se agotaron los intentos de desambiguación de slug.
var ErrExhausted = errors.New("slug: intentos de desambiguación agotados")

// maxAttempts limita el bucle de sufijos -1, -2, ... para que nunca sea infinito.
const maxAttempts = 50

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphensRe    = regexp.MustCompile(`-+`)
)

// Make deriva un slug URL-safe a partir del nombre comercial de una empresa.
// Ej.: "Acme Corporation Sdn Bhd" -> "acme-corporation-sdn-bhd".
// Los diacríticos se pliegan a ASCII antes de filtrar ("Café" -> "cafe").
func Make(name string) string {
	s := foldDiacritics(name)
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = hyphensRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Unique devuelve base si está libre; si no, prueba base-1, base-2, ... en orden
// hasta encontrar uno libre. taken informa si un candidato ya existe.
// Devuelve ErrExhausted tras maxAttempts candidatos ocupados.
func Unique(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 0; i <= maxAttempts; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

// foldDiacritics descompone a NFD, elimina las marcas combinantes y recompone a NFC.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
