package page

import (
	"fmt"
	"strings"
)

// Section is one block-level construct of a page. The set of variants is
// closed by the grammar; rendering dispatches exhaustively over it.
type Section interface {
	section()
	// HTML renders the section. root is the path prefix used to resolve
	// root-relative links and images.
	HTML(root string) (string, error)
}

// Text is a flowed text block rendered as a single element: headings,
// paragraphs, titles, subtitles, nav and footnotes.
type Text struct {
	Tag     string
	Class   string
	Attrs   []Attribute
	Content string
}

// Wrapper wraps flowed text with an optional synthesized title line, or an
// attribution line when Attribution is set (quotes).
type Wrapper struct {
	Tag         string
	Class       string
	Title       string
	Attribution bool
	Attrs       []Attribute
	Content     string
}

// Container owns an ordered sequence of child sections.
type Container struct {
	Tag      string
	Attrs    []Attribute
	Children []Section
}

// Code holds raw, unflowed content: code and pre blocks, fenced code, and
// script/css/html passthrough.
type Code struct {
	Tag      string
	Language string
	Attrs    []Attribute
	Content  string
}

// VoidTag is a contentless element such as a horizontal rule.
type VoidTag struct {
	Name  string
	Attrs []Attribute
}

// Bookmark is a link card: title and url attributes plus a flowed
// description.
type Bookmark struct {
	Attrs   []Attribute
	Content string
}

// List is an ordered or unordered sequence of flowed entries; notes and
// warnings render as classed lists.
type List struct {
	Tag     string
	Class   string
	Attrs   []Attribute
	Entries []string
}

// ChecklistEntry is one checkbox item.
type ChecklistEntry struct {
	Checked bool
	Text    string
}

// Checklist renders checkbox entries with an optional prelude paragraph.
// Todo gates whether the inputs are live or disabled.
type Checklist struct {
	Todo    bool
	Prelude string
	Attrs   []Attribute
	Entries []ChecklistEntry
}

// Image references a picture by path or URL.
type Image struct {
	Src   string
	Attrs []Attribute
}

// Video is a youtube or vimeo embed identified by a single video ID.
type Video struct {
	Host string
	ID   string
}

// Hidden is raw content emitted as an HTML comment.
type Hidden struct {
	Content string
}

// Metadata is a key-value block consumed by external tooling; it emits
// nothing. Keys are unique, last write wins.
type Metadata struct {
	Pairs map[string]string
}

// Categories names the categories a page belongs to; it emits nothing.
type Categories struct {
	Names []string
}

func (*Text) section()       {}
func (*Wrapper) section()    {}
func (*Container) section()  {}
func (*Code) section()       {}
func (*VoidTag) section()    {}
func (*Bookmark) section()   {}
func (*List) section()       {}
func (*Checklist) section()  {}
func (*Image) section()      {}
func (*Video) section()      {}
func (*Hidden) section()     {}
func (*Metadata) section()   {}
func (*Categories) section() {}

type parser struct {
	r   *Reader
	cfg Config
}

// nextAttr consumes one attribute marker line. An unrecognized body rolls
// the line back and stops attribute collection, unless strict attribute
// parsing is on and the body has a "key: value" shape.
func (p *parser) nextAttr() (Attribute, bool, error) {
	line, ok, err := p.r.NextIf(hasAttrPrefix)
	if err != nil || !ok {
		return Attribute{}, false, err
	}
	body, _ := stripAttrPrefix(line)
	if body == "" {
		return Attribute{}, false, &ExpectedAttributeError{Line: line}
	}
	attr, ok, err := ParseAttribute(body)
	if err != nil {
		return Attribute{}, false, err
	}
	if !ok {
		if p.cfg.StrictAttributes && strings.Contains(body, ": ") {
			return Attribute{}, false, &UnknownAttributeError{Name: body}
		}
		p.r.pushBack(line)
		return Attribute{}, false, nil
	}
	return attr, true, nil
}

func (p *parser) nextAttrs() ([]Attribute, error) {
	var attrs []Attribute
	for {
		attr, ok, err := p.nextAttr()
		if err != nil {
			return nil, err
		}
		if !ok {
			return attrs, nil
		}
		attrs = append(attrs, attr)
	}
}

// parseSections is the top-level grammar loop. endTag, when non-empty,
// names the enclosing container: its "/tag" marker terminates the loop
// without being consumed. End of input terminates any nesting level, so a
// missing close marker closes the container implicitly.
func (p *parser) parseSections(endTag string) ([]Section, error) {
	var sections []Section
	for {
		if err := p.r.SkipBlanks(); err != nil {
			return nil, err
		}
		line, ok, err := p.r.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if endTag != "" {
			if body, ok := stripSectionPrefix(line); ok {
				if tag, ok := strings.CutPrefix(body, "/"); ok && tag == endTag {
					break
				}
			}
		}

		if strings.HasPrefix(line, "#") {
			section, err := p.parseHeading(line)
			if err != nil {
				return nil, err
			}
			sections = append(sections, section)
			continue
		}
		if body, ok := stripSectionPrefix(line); ok {
			if _, _, err := p.r.Next(); err != nil {
				return nil, err
			}
			section, err := p.parseSection(body)
			if err != nil {
				return nil, err
			}
			sections = append(sections, section)
			continue
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		sections = append(sections, &Text{Tag: "p", Content: content})
	}
	return sections, nil
}

// parseHeading selects the heading level from the run of leading '#' and
// flows the body. Continuation lines carry the same prefix; a deeper
// heading marker terminates the block.
func (p *parser) parseHeading(line string) (Section, error) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	prefix := line[:level]
	if level > 6 {
		level = 6
	}
	content, err := p.r.nextText(func(line string) (string, bool) {
		if strings.TrimSpace(line) == "" {
			return line, true
		}
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok || strings.HasPrefix(rest, "#") {
			return "", false
		}
		return rest, true
	}, false)
	if err != nil {
		return nil, err
	}
	return &Text{Tag: fmt.Sprintf("h%d", level), Content: content}, nil
}

// parseSection dispatches on the marker keyword, with the marker prefix
// already stripped and the line consumed.
func (p *parser) parseSection(keyword string) (Section, error) {
	if keyword == "" {
		return nil, &ExpectedSectionError{Line: keyword}
	}
	if lang, ok := strings.CutPrefix(keyword, "```"); ok {
		content, err := p.r.nextTextUntilTag("```", true)
		if err != nil {
			return nil, err
		}
		return &Code{Tag: "code", Language: strings.TrimSpace(lang), Content: content}, nil
	}
	if tag, ok := strings.CutSuffix(keyword, "/"); ok && tag != "" {
		return p.parseContainer(tag)
	}

	switch keyword {
	case "title", "subtitle":
		tag, class := "h1", "title"
		if keyword == "subtitle" {
			tag, class = "p", "subtitle"
		}
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, &EmptyTitleError{Kind: keyword}
		}
		return &Text{Tag: tag, Class: class, Attrs: attrs, Content: content}, nil

	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "nav":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		return &Text{Tag: keyword, Attrs: attrs, Content: content}, nil

	case "footnote":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		return &Text{Tag: "p", Class: "footnote", Attrs: attrs, Content: content}, nil

	case "aside", "blockquote":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		title, _ := attrValue(attrs, AttrTitle)
		return &Wrapper{Tag: keyword, Title: title, Attrs: attrs, Content: content}, nil

	case "note", "warning":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		title := strings.ToUpper(keyword[:1]) + keyword[1:]
		if t, ok := attrValue(attrs, AttrTitle); ok {
			title = t
		}
		return &Wrapper{Tag: "aside", Class: keyword, Title: title, Attrs: attrs, Content: content}, nil

	case "quote":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		by, ok := attrValue(attrs, AttrBy)
		if !ok {
			by, _ = attrValue(attrs, AttrSource)
		}
		return &Wrapper{Tag: "blockquote", Class: "quote", Title: by, Attribution: true, Attrs: attrs, Content: content}, nil

	case "code", "pre", "script", "html", "css":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilTag(keyword, true)
		if err != nil {
			return nil, err
		}
		return &Code{Tag: keyword, Attrs: attrs, Content: content}, nil

	case "hr", "br":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		return &VoidTag{Name: keyword, Attrs: attrs}, nil

	case "bookmark":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		content, err := p.r.nextTextUntilSection(false)
		if err != nil {
			return nil, err
		}
		return &Bookmark{Attrs: attrs, Content: content}, nil

	case "list", "olist", "notes", "warnings":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		entries, err := p.r.nextListPrefixed("- ")
		if err != nil {
			return nil, err
		}
		tag, class := "ul", ""
		switch keyword {
		case "olist":
			tag = "ol"
		case "notes", "warnings":
			class = keyword
		}
		return &List{Tag: tag, Class: class, Attrs: attrs, Entries: entries}, nil

	case "checklist", "todo":
		return p.parseChecklist(keyword == "todo")

	case "img":
		attrs, err := p.nextAttrs()
		if err != nil {
			return nil, err
		}
		if src, ok := attrValue(attrs, AttrSrc); ok {
			return &Image{Src: src, Attrs: attrs}, nil
		}
		src, ok, err := p.r.NextIfMap(stripAttrPrefix)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &MissingImageSourceError{}
		}
		return &Image{Src: src, Attrs: attrs}, nil

	case "youtube", "vimeo":
		id, ok, err := p.r.NextIfMap(stripAttrPrefix)
		if err != nil {
			return nil, err
		}
		if !ok || id == "" {
			return nil, &MissingVideoIDError{Host: keyword}
		}
		return &Video{Host: keyword, ID: id}, nil

	case "hidden":
		content, err := p.r.nextTextUntilSection(true)
		if err != nil {
			return nil, err
		}
		return &Hidden{Content: content}, nil

	case "meta":
		return p.parseMetadata()

	case "categories":
		raw, err := p.r.nextTextUntilSection(true)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, line := range strings.Split(raw, "\n") {
			if name := strings.TrimSpace(line); name != "" {
				names = append(names, name)
			}
		}
		return &Categories{Names: names}, nil

	default:
		return nil, &UnknownSectionError{Name: keyword}
	}
}

func (p *parser) parseContainer(tag string) (Section, error) {
	switch tag {
	case "article", "section", "div":
	default:
		return nil, &UnknownSectionError{Name: tag + "/"}
	}
	attrs, err := p.nextAttrs()
	if err != nil {
		return nil, err
	}
	children, err := p.parseSections(tag)
	if err != nil {
		return nil, err
	}
	// Consume the close marker; at end of input there is nothing to
	// consume and the container closes implicitly.
	if _, _, err := p.r.Next(); err != nil {
		return nil, err
	}
	return &Container{Tag: tag, Attrs: attrs, Children: children}, nil
}

func (p *parser) parseChecklist(todo bool) (Section, error) {
	attrs, err := p.nextAttrs()
	if err != nil {
		return nil, err
	}
	isEntry := func(line string) bool {
		return strings.HasPrefix(line, "[] ") || strings.HasPrefix(line, "[x] ")
	}
	prelude, err := p.r.nextTextUntil(func(line string) bool {
		return hasSectionPrefix(line) || isEntry(line)
	}, false)
	if err != nil {
		return nil, err
	}
	raw, err := p.r.nextList(isEntry)
	if err != nil {
		return nil, err
	}
	entries := make([]ChecklistEntry, 0, len(raw))
	for _, entry := range raw {
		if rest, ok := strings.CutPrefix(entry, "[x] "); ok {
			entries = append(entries, ChecklistEntry{Checked: true, Text: rest})
			continue
		}
		entries = append(entries, ChecklistEntry{Text: strings.TrimPrefix(entry, "[] ")})
	}
	return &Checklist{Todo: todo, Prelude: prelude, Attrs: attrs, Entries: entries}, nil
}

func (p *parser) parseMetadata() (Section, error) {
	raw, err := p.r.nextTextUntilSection(true)
	if err != nil {
		return nil, err
	}
	pairs := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, &MalformedMetadataError{Line: line}
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return &Metadata{Pairs: pairs}, nil
}
