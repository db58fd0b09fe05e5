package extract

import (
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// extractEPUB walks the spine of an EPUB container, stripping each content
// document down to its text. When maxChars > 0 the walk stops once the budget
// is reached (fast preview path, indexing passes 0).
func extractEPUB(path string, maxChars int) string {
	rc, err := epub.OpenReader(path)
	if err != nil {
		logger.Error("failed opening epub file", "path", path, "error", err)
		return ""
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		logger.Error("epub has no rootfile", "path", path)
		return ""
	}
	book := rc.Rootfiles[0]

	var parts []string
	total := 0
	for _, itemref := range book.Spine.Itemrefs {
		r, err := itemref.Open()
		if err != nil {
			logger.Error("Error opening spine item", "item", itemref.IDREF, "error", err)
			continue
		}
		node, err := html.Parse(r)
		r.Close()
		if err != nil {
			logger.Error("Error parsing spine item", "item", itemref.IDREF, "error", err)
			continue
		}

		text := collectText(node)
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
		total += len(text)
		if maxChars > 0 && total >= maxChars {
			break
		}
	}
	return strings.Join(parts, "\n")
}

// collectText flattens an HTML document into the text a reader would see,
// ignoring script and style bodies.
func collectText(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}
