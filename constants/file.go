package constants

import "strings"

// FileKind is the declared kind of an uploaded document.
type FileKind string

const (
	KindMsg  FileKind = "MSG"  // Outlook message container
	KindPdf  FileKind = "PDF"  // PDF document
	KindDocx FileKind = "DOCX" // Word document
	KindEml  FileKind = "EML"  // raw internet mail
)

// AllowedExtensions holds the file extensions accepted for intake.
var AllowedExtensions = map[string]FileKind{
	"msg":  KindMsg,
	"pdf":  KindPdf,
	"docx": KindDocx,
	"eml":  KindEml,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind resolves a file extension to its kind. Returns "" for
// unsupported extensions; callers degrade those to a read-error record
// rather than rejecting the file.
func MapExtToKind(ext string) FileKind {
	if k, ok := AllowedExtensions[NormalizeExt(ext)]; ok {
		return k
	}
	return ""
}
