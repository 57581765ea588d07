// Package page implements the neohtml markup language: a line-based page
// format parsed into a section tree and compiled to HTML.
package page

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
)

// Config controls parsing policy and the emitted page shell.
type Config struct {
	// StrictAttributes makes an unrecognized "key: value" marker line a
	// fatal parse error instead of falling back to plain content.
	StrictAttributes bool

	// Head resources of the emitted document. Root-relative entries are
	// resolved against the project root at render time.
	Stylesheets   []string
	ScriptLinks   []string
	InlineScripts []string
}

// DefaultConfig returns the page shell used by the reference site: the
// highlight.js assets plus a site-wide stylesheet.
func DefaultConfig() Config {
	return Config{
		Stylesheets: []string{
			"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.8.0/styles/monokai.min.css",
			"global.css",
		},
		ScriptLinks:   []string{"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.8.0/highlight.min.js"},
		InlineScripts: []string{"hljs.highlightAll();"},
	}
}

// Marker lines are prefixed by "--" or "->", by a run of '#' for headings,
// or by a code fence.

func hasSectionPrefix(line string) bool {
	return strings.HasPrefix(line, "->") ||
		strings.HasPrefix(line, "--") ||
		strings.HasPrefix(line, "```") ||
		strings.HasPrefix(line, "#")
}

func stripSectionPrefix(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "->"); ok {
		return strings.TrimSpace(rest), true
	}
	if rest, ok := strings.CutPrefix(line, "--"); ok {
		return strings.TrimSpace(rest), true
	}
	if strings.HasPrefix(line, "```") {
		return strings.TrimSpace(line), true
	}
	return "", false
}

func hasAttrPrefix(line string) bool {
	return strings.HasPrefix(line, "->") || strings.HasPrefix(line, "--")
}

func stripAttrPrefix(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "->"); ok {
		return strings.TrimSpace(rest), true
	}
	if rest, ok := strings.CutPrefix(line, "--"); ok {
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// Page is the root of one parsed document: an ordered sequence of top-level
// sections, immutable once built. Each parse owns its own cursor, so
// independent pages may be parsed concurrently without coordination.
type Page struct {
	sections []Section
	cfg      Config
}

// New parses one document from r.
func New(r io.Reader, cfg Config) (*Page, error) {
	p := &parser{r: NewReader(r), cfg: cfg}
	sections, err := p.parseSections("")
	if err != nil {
		return nil, err
	}
	return &Page{sections: sections, cfg: cfg}, nil
}

// FromSource parses a document held in memory.
func FromSource(src string, cfg Config) (*Page, error) {
	return New(strings.NewReader(src), cfg)
}

// Load parses the page source at path.
func Load(path string, cfg Config) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pg, err := New(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pg, nil
}

// Sections returns the top-level sections in source order.
func (p *Page) Sections() []Section { return p.sections }

func walkSections(sections []Section, fn func(Section)) {
	for _, s := range sections {
		fn(s)
		if c, ok := s.(*Container); ok {
			walkSections(c.Children, fn)
		}
	}
}

// Meta merges every metadata section of the page; later keys win. Metadata
// never renders, it exists for external consumers like the site index.
func (p *Page) Meta() map[string]string {
	meta := make(map[string]string)
	walkSections(p.sections, func(s Section) {
		if m, ok := s.(*Metadata); ok {
			for k, v := range m.Pairs {
				meta[k] = v
			}
		}
	})
	return meta
}

// Categories returns the page's category names in source order.
func (p *Page) Categories() []string {
	var names []string
	walkSections(p.sections, func(s Section) {
		if c, ok := s.(*Categories); ok {
			names = append(names, c.Names...)
		}
	})
	return names
}

// Render linearizes the page to a complete HTML document. root is the path
// prefix used to resolve root-relative links and images, e.g. ".." for a
// page one directory below the site root.
func (p *Page) Render(root string) (string, error) {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title, ok := p.Meta()["title"]; ok {
		fmt.Fprintf(&sb, "<title>%s</title>\n", escapeHTML(title))
	}
	for _, href := range p.cfg.Stylesheets {
		resolved, err := resolvePath(root, href)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<link rel=\"stylesheet\" href=\"%s\">\n", html.EscapeString(resolved))
	}
	for _, src := range p.cfg.ScriptLinks {
		resolved, err := resolvePath(root, src)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<script src=\"%s\"></script>\n", html.EscapeString(resolved))
	}
	sb.WriteString("</head>\n<body>\n")
	for _, section := range p.sections {
		h, err := section.HTML(root)
		if err != nil {
			return "", err
		}
		if h == "" {
			continue
		}
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	for _, script := range p.cfg.InlineScripts {
		fmt.Fprintf(&sb, "<script>%s</script>\n", script)
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}
