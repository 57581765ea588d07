package page

import (
	"fmt"
	"html"
	"strings"
)

func htmlAttr(name, value string) string {
	return fmt.Sprintf(` %s="%s"`, name, html.EscapeString(value))
}

// renderAttrs combines a section's own class with its parsed attributes.
// Source order is preserved so emitted attribute order is deterministic;
// class values merge into a single class attribute. Attributes consumed by
// their owning section (title, by, url, ...) are not emitted here.
func renderAttrs(class string, attrs []Attribute) string {
	var classes []string
	if class != "" {
		classes = append(classes, class)
	}
	var rest []string
	for _, attr := range attrs {
		switch attr.Kind {
		case AttrClass:
			classes = append(classes, attr.Value)
		case AttrID:
			rest = append(rest, htmlAttr("id", attr.Value))
		case AttrAlt:
			rest = append(rest, htmlAttr("alt", attr.Value))
		case AttrType:
			rest = append(rest, htmlAttr("type", attr.Value))
		case AttrHidden:
			rest = append(rest, " hidden")
		case AttrShow:
			rest = append(rest, " open")
		}
	}
	var sb strings.Builder
	if len(classes) > 0 {
		sb.WriteString(htmlAttr("class", strings.Join(classes, " ")))
	}
	for _, tok := range rest {
		sb.WriteString(tok)
	}
	return sb.String()
}

func (s *Text) HTML(root string) (string, error) {
	content, err := formatText(s.Content, root)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<%s%s>%s</%s>", s.Tag, renderAttrs(s.Class, s.Attrs), content, s.Tag), nil
}

func (s *Wrapper) HTML(root string) (string, error) {
	content, err := formatText(s.Content, root)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s%s>", s.Tag, renderAttrs(s.Class, s.Attrs))
	if s.Title != "" && !s.Attribution {
		fmt.Fprintf(&sb, `<p class="title">%s</p>`, escapeHTML(s.Title))
	}
	if sub, ok := attrValue(s.Attrs, AttrSubtitle); ok {
		fmt.Fprintf(&sb, `<p class="subtitle">%s</p>`, escapeHTML(sub))
	}
	fmt.Fprintf(&sb, "<p>%s</p>", content)
	if s.Title != "" && s.Attribution {
		fmt.Fprintf(&sb, `<p class="by">&mdash; %s</p>`, escapeHTML(s.Title))
	}
	fmt.Fprintf(&sb, "</%s>", s.Tag)
	return sb.String(), nil
}

func (s *Container) HTML(root string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s%s>\n", s.Tag, renderAttrs("", s.Attrs))
	for _, child := range s.Children {
		h, err := child.HTML(root)
		if err != nil {
			return "", err
		}
		if h == "" {
			continue
		}
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "</%s>", s.Tag)
	return sb.String(), nil
}

func (s *Code) HTML(root string) (string, error) {
	switch s.Tag {
	case "script":
		return fmt.Sprintf("<script%s>\n%s\n</script>", renderAttrs("", s.Attrs), s.Content), nil
	case "css":
		return fmt.Sprintf("<style%s>\n%s\n</style>", renderAttrs("", s.Attrs), s.Content), nil
	case "html":
		return s.Content, nil
	}
	class := ""
	if s.Language != "" {
		class = "language-" + s.Language
	}
	return fmt.Sprintf("<pre%s><code%s>%s</code></pre>",
		renderAttrs("", s.Attrs), renderAttrs(class, nil), escapeHTML(s.Content)), nil
}

func (s *VoidTag) HTML(root string) (string, error) {
	return fmt.Sprintf("<%s%s>", s.Name, renderAttrs("", s.Attrs)), nil
}

func (s *Bookmark) HTML(root string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div%s>", renderAttrs("bookmark", s.Attrs))
	title, hasTitle := attrValue(s.Attrs, AttrTitle)
	if url, ok := attrValue(s.Attrs, AttrURL); ok {
		href, err := resolvePath(root, url)
		if err != nil {
			return "", err
		}
		text := title
		if !hasTitle {
			text = url
		}
		fmt.Fprintf(&sb, `<a href="%s">%s</a>`, html.EscapeString(href), escapeHTML(text))
	} else if hasTitle {
		fmt.Fprintf(&sb, `<p class="title">%s</p>`, escapeHTML(title))
	}
	if s.Content != "" {
		content, err := formatText(s.Content, root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<p>%s</p>", content)
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

func (s *List) HTML(root string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s%s>\n", s.Tag, renderAttrs(s.Class, s.Attrs))
	for _, entry := range s.Entries {
		content, err := formatText(entry, root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<li>%s</li>\n", content)
	}
	fmt.Fprintf(&sb, "</%s>", s.Tag)
	return sb.String(), nil
}

func (s *Checklist) HTML(root string) (string, error) {
	class := "checklist"
	if s.Todo {
		class = "todo"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div%s>\n", renderAttrs(class, s.Attrs))
	if s.Prelude != "" {
		content, err := formatText(s.Prelude, root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<p>%s</p>\n", content)
	}
	sb.WriteString("<ul>\n")
	for _, entry := range s.Entries {
		content, err := formatText(entry.Text, root)
		if err != nil {
			return "", err
		}
		checked := ""
		if entry.Checked {
			checked = " checked"
		}
		disabled := " disabled"
		if s.Todo {
			disabled = ""
		}
		fmt.Fprintf(&sb, "<li><label><input type=\"checkbox\"%s%s> %s</label></li>\n", checked, disabled, content)
	}
	sb.WriteString("</ul>\n</div>")
	return sb.String(), nil
}

func (s *Image) HTML(root string) (string, error) {
	src, err := resolvePath(root, s.Src)
	if err != nil {
		return "", err
	}
	img := fmt.Sprintf(`<img src="%s"%s>`, html.EscapeString(src), renderAttrs("", s.Attrs))
	if link, ok := attrValue(s.Attrs, AttrLink); ok {
		href, err := resolvePath(root, link)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), img), nil
	}
	return img, nil
}

func (s *Video) HTML(root string) (string, error) {
	var src string
	switch s.Host {
	case "youtube":
		src = "https://www.youtube.com/embed/" + s.ID
	case "vimeo":
		src = "https://player.vimeo.com/video/" + s.ID
	}
	return fmt.Sprintf(`<iframe class="video" src="%s" frameborder="0" allowfullscreen></iframe>`,
		html.EscapeString(src)), nil
}

func (s *Hidden) HTML(root string) (string, error) {
	return fmt.Sprintf("<!-- %s -->", escapeHTML(s.Content)), nil
}

func (s *Metadata) HTML(root string) (string, error) { return "", nil }

func (s *Categories) HTML(root string) (string, error) { return "", nil }
