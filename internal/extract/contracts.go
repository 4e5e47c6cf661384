package extract

import (
	"github.com/contacto-solutions/novedades-tracker/constants"
)

// SourceDocument is one uploaded file. Immutable once read.
type SourceDocument struct {
	Name string
	Kind constants.FileKind
	Raw  []byte
}

// Content is the plain-text representation of a SourceDocument plus the
// structured header fields available for mail-like kinds. Body is never
// missing: absent content yields "", and decode failures yield a body
// carrying a recognizable error marker with the cause mirrored in Err.
type Content struct {
	Subject string
	Sender  string
	Date    string // opaque, unparsed
	Body    string
	Err     string // non-empty when extraction degraded to an error body
}

// TextExtractor is stage 1: file -> text. Extract never returns an error;
// failures are folded into the Content per the degradation policy.
type TextExtractor interface {
	Extract(doc SourceDocument) Content
}
