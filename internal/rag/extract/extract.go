package extract

import (
	"errors"
	"path/filepath"
	"strings"

	"bookrag/internal/domain/commonModels"
	"bookrag/pkg/logger_i"

	"github.com/lu4p/cat"
)

// ErrUnsupportedFormat is returned when the file extension maps to no known
// extractor. This is the only hard failure on the extraction path, everything
// else degrades to empty text.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var logger = logger_i.NewLogger("Extractor")

// Options bounds how much of the document is read. Zero values mean no cap,
// which is what indexing wants. Metadata analysis passes both caps.
type Options struct {
	MaxPages int //paginated formats only
	MaxChars int //any format
}

// Text extracts plain text from a document on disk, selecting the parser by
// extension. Parse failures inside a supported format yield "" rather than
// an error, callers needing minimum-content guarantees check the result.
func Text(path string, opts Options) (string, error) {
	var text string
	switch DocTypeOf(path) {
	case commonModels.PDF:
		text = extractPDF(path, opts.MaxPages)
	case commonModels.EPUB:
		text = extractEPUB(path, opts.MaxChars)
	case commonModels.DOCX:
		text = extractFlatDoc(path)
	default:
		return "", ErrUnsupportedFormat
	}
	return capRunes(text, opts.MaxChars), nil
}

// capRunes enforces the character budget at a rune boundary. The EPUB walk
// already stops early, this makes the cap exact and covers the other formats.
func capRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func DocTypeOf(path string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return commonModels.PDF
	case ".epub":
		return commonModels.EPUB
	case ".txt", ".docx", ".rtf", ".odt":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

// extractFlatDoc reads a .txt, .docx, .rtf or .odt file as one block of text.
func extractFlatDoc(path string) string {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path, "error", err)
		return ""
	}
	return text
}
