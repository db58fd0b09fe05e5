package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

// extractPDF concatenates the plain text of up to maxPages pages (all pages
// when maxPages <= 0). Unreadable pages are skipped, an unreadable file
// yields "".
func extractPDF(path string, maxPages int) string {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening pdf file", "path", path, "error", err)
		return ""
	}

	numPages := f.NumPage()
	if maxPages > 0 && numPages > maxPages {
		numPages = maxPages
	}

	var text strings.Builder
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log warning but continue with other pages
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		text.WriteString(content)
	}
	return text.String()
}

// protectExtract guards against the parser hanging on malformed pages.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract timeout")
		return "", errors.New("timeout")
	}
}
