package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contacto-solutions/novedades-tracker/constants"
)

// Extractor decodes uploaded documents into plain text. It implements
// TextExtractor and is safe for reuse across files; extraction is
// deterministic given identical bytes.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract dispatches on the document kind. Decoding failures never abort the
// batch: they produce a Content whose body is an "ERROR parse_<kind>: ..."
// marker, and panics from the underlying decoders are caught the same way.
func (e *Extractor) Extract(doc SourceDocument) (out Content) {
	start := time.Now()
	kind := strings.ToLower(string(doc.Kind))

	defer func() {
		if r := recover(); r != nil {
			out = errContent(kind, fmt.Errorf("decoder panic: %v", r))
		}
		e.logger.Info("extract.done",
			"file", doc.Name,
			"kind", doc.Kind,
			"body_bytes", len(out.Body),
			"degraded", out.Err != "",
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}()

	var (
		c   Content
		err error
	)
	switch doc.Kind {
	case constants.KindMsg:
		c, err = parseMsg(doc.Raw)
	case constants.KindPdf:
		c, err = parsePdf(doc.Raw)
	case constants.KindDocx:
		c, err = parseDocx(doc.Raw)
	case constants.KindEml:
		c, err = parseEml(doc.Raw)
	default:
		return Content{Err: fmt.Sprintf("unsupported extension: %s", doc.Name)}
	}
	if err != nil {
		return errContent(kind, err)
	}

	c.Subject = strings.TrimSpace(c.Subject)
	c.Sender = strings.TrimSpace(c.Sender)
	c.Date = strings.TrimSpace(c.Date)
	c.Body = NormalizeText(c.Body)
	return c
}

func errContent(kind string, err error) Content {
	msg := fmt.Sprintf("ERROR parse_%s: %v", kind, err)
	return Content{Body: msg, Err: err.Error()}
}
