package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseDocx concatenates paragraph texts in document order, one per line.
// A .docx is a zip archive; the paragraphs live in word/document.xml as
// <w:p> elements whose runs carry <w:t> text nodes.
func parseDocx(raw []byte) (Content, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return Content{}, fmt.Errorf("open docx: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return Content{}, fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return Content{}, errors.New("docx has no word/document.xml")
	}
	defer docXML.Close()

	var (
		b      strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(docXML)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Content{}, fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return Content{Body: b.String()}, nil
}
