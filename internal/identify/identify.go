// Package identify scans free text for the national identification number
// and person name that banking partners embed in novelty subjects.
package identify

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Match is the optional (cédula, nombre) pair found in a text. Either or
// both may be empty; absence of a match is not an error.
type Match struct {
	Cedula string
	Nombre string
}

// Label-optional rule: a labeled number wins, otherwise the first bare run
// of 5-12 digits is taken. No checksum validation; false positives are an
// accepted limitation of the upstream data.
var (
	reLabeledID = regexp.MustCompile(`(?i)\b(?:c\.?\s?c\.?|c[eé]dula(?:\s+de\s+ciudadan[ií]a)?)[\s:.#-]*(\d{5,12})\b`)
	reBareID    = regexp.MustCompile(`\b(\d{5,12})\b`)
	reName      = regexp.MustCompile(`([A-ZÁÉÍÓÚÜÑ][A-ZÁÉÍÓÚÜÑ ]{2,})\s*(?i:c\.?\s?c\.?|c[eé]dula)`)
)

// Extract is a pure function: no I/O, idempotent, insensitive to the text
// surrounding a match. Safe for concurrent use; a cases.Caser carries state
// across calls, so one is built per invocation.
func Extract(text string) Match {
	var m Match
	if g := reLabeledID.FindStringSubmatch(text); g != nil {
		m.Cedula = g[1]
	} else if g := reBareID.FindStringSubmatch(text); g != nil {
		m.Cedula = g[1]
	}
	if g := reName.FindStringSubmatch(text); g != nil {
		if name := strings.TrimSpace(g[1]); len(name) >= 3 {
			m.Nombre = cases.Title(language.Spanish).String(strings.ToLower(name))
		}
	}
	return m
}

// Empty reports whether no identifier was found.
func (m Match) Empty() bool {
	return m.Cedula == "" && m.Nombre == ""
}
