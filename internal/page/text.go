package page

import (
	"fmt"
	"html"
	"path"
	"regexp"
	"strings"
)

// escapeHTML escapes reserved HTML characters. Every text node is escaped
// exactly once, before any inline rewriting, so user content cannot inject
// raw HTML.
func escapeHTML(s string) string { return html.EscapeString(s) }

// The inline passes run in a fixed priority order over the already-escaped
// text; each operates on the output of the previous one. Attribute
// mini-language text cannot contain the delimiters of outer passes, so
// later patterns never re-match earlier output.
var (
	reLiteral   = regexp.MustCompile(`\\(&(?:lt|gt|amp|quot|#39);|.)`)
	reTagClosed = regexp.MustCompile(`&lt;&lt;([a-zA-Z][\w-]*)(?:\|([^|]*?))?&gt;&gt;`)
	reTagWrap   = regexp.MustCompile(`&lt;&lt;([a-zA-Z][\w-]*)\|([^|]*)\|([^|]*?)&gt;&gt;`)
	reShortLink = regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]+)\)`)
	reAngleLink = regexp.MustCompile(`&lt;((?:https?://|www\.)[^\s]*?)&gt;`)
	reEmphasis  = regexp.MustCompile(`\*([^*]+)\*([bisc])(?: +([^*]+))?\*`)
	reMiniAttr  = regexp.MustCompile(`^([a-zA-Z][\w-]*):(\S+)$`)
)

// literalEntities maps backslash-escaped markup characters (post-escape) to
// numeric entities, which no later pass can match.
var literalEntities = map[string]string{
	"&lt;":   "&#60;",
	"&gt;":   "&#62;",
	"&amp;":  "&#38;",
	"&quot;": "&#34;",
	"&#39;":  "&#39;",
	"*":      "&#42;",
	"[":      "&#91;",
	"]":      "&#93;",
	"(":      "&#40;",
	")":      "&#41;",
	"|":      "&#124;",
	"#":      "&#35;",
	"-":      "&#45;",
	"`":      "&#96;",
	"\\":     "&#92;",
}

var emphasisTags = map[string]string{
	"b": "strong",
	"i": "em",
	"s": "del",
	"c": "code",
}

type formatter struct {
	root string
	err  error
}

// formatText rewrites inline markup inside flowed text into an HTML
// fragment.
func formatText(text, root string) (string, error) {
	f := &formatter{root: root}
	s := escapeHTML(text)
	s = reLiteral.ReplaceAllStringFunc(s, f.literal)
	s = reTagClosed.ReplaceAllStringFunc(s, f.tagClosed)
	s = reTagWrap.ReplaceAllStringFunc(s, f.tagWrap)
	s = reShortLink.ReplaceAllStringFunc(s, f.shortLink)
	s = reAngleLink.ReplaceAllStringFunc(s, f.angleLink)
	s = reEmphasis.ReplaceAllStringFunc(s, f.emphasis)
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s, f.err
}

func (f *formatter) literal(m string) string {
	if entity, ok := literalEntities[m[1:]]; ok {
		return entity
	}
	return m
}

func (f *formatter) tagClosed(m string) string {
	groups := reTagClosed.FindStringSubmatch(m)
	return fmt.Sprintf("<%s%s/>", groups[1], f.miniAttrs(groups[2]))
}

func (f *formatter) tagWrap(m string) string {
	groups := reTagWrap.FindStringSubmatch(m)
	tag, content, attrs := groups[1], groups[2], groups[3]
	if tag == "link" {
		return fmt.Sprintf(`<a href="%s">%s</a>`, f.resolve(attrs), content)
	}
	return fmt.Sprintf("<%s%s>%s</%s>", tag, f.miniAttrs(attrs), content, tag)
}

func (f *formatter) shortLink(m string) string {
	groups := reShortLink.FindStringSubmatch(m)
	return fmt.Sprintf(`<a href="%s">%s</a>`, f.resolve(groups[2]), groups[1])
}

func (f *formatter) angleLink(m string) string {
	groups := reAngleLink.FindStringSubmatch(m)
	return fmt.Sprintf(`<a href="%s">%s</a>`, f.resolve(groups[1]), groups[1])
}

func (f *formatter) emphasis(m string) string {
	groups := reEmphasis.FindStringSubmatch(m)
	tag := emphasisTags[groups[2]]
	return fmt.Sprintf("<%s%s>%s</%s>", tag, f.miniAttrs(groups[3]), groups[1], tag)
}

// miniAttrs renders the attribute mini-language: space-separated key:value
// pairs, with bare words as boolean attributes.
func (f *formatter) miniAttrs(s string) string {
	var sb strings.Builder
	for _, field := range strings.Fields(s) {
		if groups := reMiniAttr.FindStringSubmatch(field); groups != nil {
			fmt.Fprintf(&sb, ` %s="%s"`, groups[1], groups[2])
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(field)
	}
	return sb.String()
}

func (f *formatter) resolve(p string) string {
	resolved, err := resolvePath(f.root, p)
	if err != nil && f.err == nil {
		f.err = err
	}
	return resolved
}

// resolvePath joins root-relative paths ("/...") to the project root; other
// paths pass through untouched. A cleaned path that climbs out of the root
// is a BuildError.
func resolvePath(root, p string) (string, error) {
	rel, ok := strings.CutPrefix(p, "/")
	if !ok {
		return p, nil
	}
	cleaned := path.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return p, &BuildError{Path: p}
	}
	if root == "" {
		return "/" + cleaned, nil
	}
	return path.Join(root, cleaned), nil
}
