package page

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func renderDoc(t *testing.T, src string) (*goquery.Document, string) {
	t.Helper()
	pg, err := FromSource(src, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out, err := pg.Render(".")
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("rendered output is not parseable HTML: %v", err)
	}
	return doc, out
}

func TestRender_EndToEnd(t *testing.T) {
	doc, _ := renderDoc(t, "--title\nHello\n--p\nSome *bold*b* text.")

	if got := doc.Find("h1.title").Text(); got != "Hello" {
		t.Errorf("expected h1.title %q, got %q", "Hello", got)
	}
	p := doc.Find("body > p")
	if p.Length() != 1 {
		t.Fatalf("expected 1 paragraph, got %d", p.Length())
	}
	if got := p.Find("strong").Text(); got != "bold" {
		t.Errorf("expected strong %q, got %q", "bold", got)
	}
	if got := p.Text(); got != "Some bold text." {
		t.Errorf("expected paragraph text %q, got %q", "Some bold text.", got)
	}
}

func TestRender_PageShell(t *testing.T) {
	doc, out := renderDoc(t, "--meta\ntitle: Shell Test\n--p\nbody")

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("output should start with a doctype")
	}
	if got := doc.Find("head title").Text(); got != "Shell Test" {
		t.Errorf("metadata title should reach the head, got %q", got)
	}
	if doc.Find(`link[rel=stylesheet]`).Length() != 2 {
		t.Error("expected highlight and site stylesheets")
	}
	if doc.Find(`script[src]`).Length() != 1 {
		t.Error("expected the highlight script link")
	}
	if !strings.Contains(out, "hljs.highlightAll();") {
		t.Error("expected the highlight bootstrap call")
	}
}

func TestRender_MetadataAndCategoriesAreInvisible(t *testing.T) {
	doc, _ := renderDoc(t, "--meta\nauthor: me\n--categories\ngo\n--p\nvisible")

	if got := doc.Find("body").Text(); strings.Contains(got, "me") || strings.Contains(got, "go") {
		t.Errorf("metadata and categories must not render: %q", got)
	}
	if got := doc.Find("p").Text(); got != "visible" {
		t.Errorf("expected visible paragraph, got %q", got)
	}
}

func TestHTML_ContainerNestsChildren(t *testing.T) {
	doc, _ := renderDoc(t, "--article/\n--id: post\n--h2\nInside\n--/article")

	if got := doc.Find("article#post h2").Text(); got != "Inside" {
		t.Errorf("expected nested heading, got %q", got)
	}
}

func TestHTML_AttributeOrderIsDeterministic(t *testing.T) {
	pg, err := FromSource("--p\n--class: a\n--id: x\n--class: b\nbody", Config{})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out, err := pg.Sections()[0].HTML(".")
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if out != `<p class="a b" id="x">body</p>` {
		t.Errorf("unexpected attribute rendering: %q", out)
	}
}

func TestHTML_NoteWrapper(t *testing.T) {
	doc, _ := renderDoc(t, "--note\nremember this")

	aside := doc.Find("aside.note")
	if aside.Length() != 1 {
		t.Fatal("expected one aside.note")
	}
	if got := aside.Find("p.title").Text(); got != "Note" {
		t.Errorf("expected synthesized title, got %q", got)
	}
}

func TestHTML_QuoteAttribution(t *testing.T) {
	doc, _ := renderDoc(t, "--quote\n--by: Ada\nwisdom")

	quote := doc.Find("blockquote.quote")
	if got := quote.Find("p.by").Text(); !strings.Contains(got, "Ada") {
		t.Errorf("expected attribution line, got %q", got)
	}
}

func TestHTML_QuoteSourceFallback(t *testing.T) {
	doc, _ := renderDoc(t, "--quote\n--source: The Manual\nwisdom")

	if got := doc.Find("blockquote p.by").Text(); !strings.Contains(got, "The Manual") {
		t.Errorf("source attribute should attribute unauthored quotes, got %q", got)
	}
}

func TestHTML_NoteSubtitle(t *testing.T) {
	doc, _ := renderDoc(t, "--note\n--subtitle: small print\nremember")

	if got := doc.Find("aside.note p.subtitle").Text(); got != "small print" {
		t.Errorf("expected subtitle line, got %q", got)
	}
}

func TestHTML_LinkedImage(t *testing.T) {
	pg, err := FromSource("--img\n--link: /full/cat.png\n--/thumbs/cat.png", Config{})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out, err := pg.Sections()[0].HTML(".")
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if out != `<a href="full/cat.png"><img src="thumbs/cat.png"></a>` {
		t.Errorf("linked image should wrap in an anchor, got %q", out)
	}
}

func TestHTML_CodeIsEscaped(t *testing.T) {
	_, out := renderDoc(t, "--code\nif a < b && c > d {\n--/code")

	if !strings.Contains(out, "&lt; b &amp;&amp; c &gt;") {
		t.Errorf("code content must be escaped: %q", out)
	}
}

func TestHTML_FenceLanguageClass(t *testing.T) {
	doc, _ := renderDoc(t, "```rust\nlet x = 1;\n```")

	if doc.Find("pre code.language-rust").Length() != 1 {
		t.Error("expected a language-classed code block")
	}
}

func TestHTML_ScriptPassthrough(t *testing.T) {
	_, out := renderDoc(t, "--script\nconsole.log('hi');\n--/script")

	if !strings.Contains(out, "console.log('hi');") {
		t.Errorf("script content must pass through verbatim: %q", out)
	}
}

func TestHTML_ChecklistInputs(t *testing.T) {
	doc, _ := renderDoc(t, "--checklist\n[x] done\n[] open")

	inputs := doc.Find(`div.checklist input[type=checkbox]`)
	if inputs.Length() != 2 {
		t.Fatalf("expected 2 checkboxes, got %d", inputs.Length())
	}
	if doc.Find("input[disabled]").Length() != 2 {
		t.Error("checklist inputs should be disabled")
	}
	if doc.Find("input[checked]").Length() != 1 {
		t.Error("expected exactly one checked input")
	}
}

func TestHTML_TodoInputsAreLive(t *testing.T) {
	doc, _ := renderDoc(t, "--todo\n[] task")

	if doc.Find("input[disabled]").Length() != 0 {
		t.Error("todo inputs should not be disabled")
	}
	if doc.Find("div.todo").Length() != 1 {
		t.Error("expected a div.todo wrapper")
	}
}

func TestHTML_ImageResolvesRoot(t *testing.T) {
	pg, err := FromSource("--img\n--alt: cat\n--/images/cat.png", Config{})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out, err := pg.Sections()[0].HTML("..")
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if out != `<img src="../images/cat.png" alt="cat">` {
		t.Errorf("unexpected image markup: %q", out)
	}
}

func TestHTML_VideoEmbeds(t *testing.T) {
	doc, _ := renderDoc(t, "--youtube\n--abc123")

	iframe := doc.Find("iframe.video")
	if src, _ := iframe.Attr("src"); src != "https://www.youtube.com/embed/abc123" {
		t.Errorf("unexpected embed source: %q", src)
	}
}

func TestHTML_HiddenBecomesComment(t *testing.T) {
	_, out := renderDoc(t, "--hidden\nsecret draft")

	if !strings.Contains(out, "<!-- secret draft -->") {
		t.Errorf("hidden sections should render as comments: %q", out)
	}
}

func TestHTML_HorizontalRule(t *testing.T) {
	doc, _ := renderDoc(t, "--p\nabove\n--hr\n--p\nbelow")

	if doc.Find("hr").Length() != 1 {
		t.Error("expected a horizontal rule")
	}
}

func TestHTML_BookmarkLink(t *testing.T) {
	doc, _ := renderDoc(t, "--bookmark\n--title: Docs\n--url: https://example.com/docs\nThe manual.")

	a := doc.Find("div.bookmark a")
	if got := a.Text(); got != "Docs" {
		t.Errorf("expected link text %q, got %q", "Docs", got)
	}
	if href, _ := a.Attr("href"); href != "https://example.com/docs" {
		t.Errorf("unexpected href %q", href)
	}
	if got := doc.Find("div.bookmark p").Text(); got != "The manual." {
		t.Errorf("expected description, got %q", got)
	}
}
