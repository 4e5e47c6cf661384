package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// parsePdf concatenates each page's text in document order, one newline per
// page. Pages yielding no extractable text contribute nothing; that is not
// an error (scanned pages without a text layer are common).
func parsePdf(raw []byte) (Content, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return Content{}, fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return Content{Body: b.String()}, nil
}
