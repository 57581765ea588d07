package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/InfiniteCoder01/neohtml/internal/page"
	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"
)

// pageTitle picks a display title for the index: the page's metadata title,
// else one recovered from the rendered document.
func pageTitle(pg *page.Page, rendered string) string {
	if title, ok := pg.Meta()["title"]; ok {
		return title
	}
	return findTitle(rendered)
}

// findTitle recovers a title from rendered HTML: the <title> element if
// present, else the first heading.
func findTitle(document string) string {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return ""
	}
	if n := findElement(doc, "title"); n != nil {
		return textContent(n)
	}
	for _, tag := range []string{"h1", "h2"} {
		if n := findElement(doc, tag); n != nil {
			return textContent(n)
		}
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// writeIndex emits index.html at the site root listing every built page.
func (b *Builder) writeIndex(dir string, built []result) error {
	var total uint64
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Index</title>\n")
	fmt.Fprintf(&sb, "<link rel=\"stylesheet\" href=\"%s\">\n", html.EscapeString(b.cfg.Stylesheet))
	sb.WriteString("</head>\n<body>\n<h1>Pages</h1>\n<ul class=\"index\">\n")
	for _, r := range built {
		rel, err := filepath.Rel(dir, r.output)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		title := r.title
		if title == "" {
			title = rel
		}
		fmt.Fprintf(&sb, "<li><a href=\"%s\">%s</a>", html.EscapeString(rel), html.EscapeString(title))
		if len(r.categories) > 0 {
			fmt.Fprintf(&sb, " <span class=\"categories\">%s</span>", html.EscapeString(strings.Join(r.categories, ", ")))
		}
		sb.WriteString("</li>\n")
		total += uint64(r.size)
	}
	sb.WriteString("</ul>\n")
	fmt.Fprintf(&sb, "<p class=\"footer\">%d pages, %s</p>\n", len(built), humanize.Bytes(total))
	sb.WriteString("</body>\n</html>\n")

	return os.WriteFile(filepath.Join(dir, "index.html"), []byte(sb.String()), 0o644)
}
