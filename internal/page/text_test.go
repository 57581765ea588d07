package page

import (
	"errors"
	"strings"
	"testing"
)

func format(t *testing.T, text, root string) string {
	t.Helper()
	out, err := formatText(text, root)
	if err != nil {
		t.Fatalf("unexpected format error: %v", err)
	}
	return out
}

func TestEscapeHTML(t *testing.T) {
	got := escapeHTML("<a & b>")
	if got != "&lt;a &amp; b&gt;" {
		t.Errorf("expected %q, got %q", "&lt;a &amp; b&gt;", got)
	}
}

func TestFormatText_EscapesUserHTML(t *testing.T) {
	got := format(t, "<script>alert(1)</script>", "")
	if strings.Contains(got, "<script>") {
		t.Errorf("user HTML must not survive formatting: %q", got)
	}
}

func TestFormatText_EmphasisBold(t *testing.T) {
	got := format(t, "Some *bold*b* text.", "")
	if got != "Some <strong>bold</strong> text." {
		t.Errorf("expected strong wrap, got %q", got)
	}
}

func TestFormatText_EmphasisKinds(t *testing.T) {
	cases := []struct{ in, want string }{
		{"*x*i*", "<em>x</em>"},
		{"*x*s*", "<del>x</del>"},
		{"*x*c*", "<code>x</code>"},
	}
	for _, c := range cases {
		if got := format(t, c.in, ""); got != c.want {
			t.Errorf("%q: expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestFormatText_EmphasisAttributeSuffix(t *testing.T) {
	got := format(t, "*deal*b id:intro*", "")
	if got != `<strong id="intro">deal</strong>` {
		t.Errorf("expected attribute suffix, got %q", got)
	}
}

func TestFormatText_GenericSelfClosingTag(t *testing.T) {
	got := format(t, "before <<wbr>> after", "")
	if got != "before <wbr/> after" {
		t.Errorf("expected self-closing tag, got %q", got)
	}
}

func TestFormatText_GenericSelfClosingTagWithAttrs(t *testing.T) {
	got := format(t, "<<hr|class:thin>>", "")
	if got != `<hr class="thin"/>` {
		t.Errorf("expected attrs on self-closing tag, got %q", got)
	}
}

func TestFormatText_GenericWrappingTag(t *testing.T) {
	got := format(t, "<<span|hello|class:loud id:x>>", "")
	if got != `<span class="loud" id="x">hello</span>` {
		t.Errorf("expected wrapping tag, got %q", got)
	}
}

func TestFormatText_LinkTagResolvesRoot(t *testing.T) {
	got := format(t, "<<link|docs|/docs/index.html>>", "..")
	if got != `<a href="../docs/index.html">docs</a>` {
		t.Errorf("expected resolved anchor, got %q", got)
	}
}

func TestFormatText_ShorthandLink(t *testing.T) {
	got := format(t, "see [home](/index.html) now", ".")
	if got != `see <a href="index.html">home</a> now` {
		t.Errorf("expected shorthand link, got %q", got)
	}
}

func TestFormatText_AngleAutolink(t *testing.T) {
	got := format(t, "visit <https://example.com> today", "")
	want := `visit <a href="https://example.com">https://example.com</a> today`
	if got != want {
		t.Errorf("expected autolink, got %q", got)
	}
}

func TestFormatText_BackslashSuppressesEmphasis(t *testing.T) {
	got := format(t, `\*literal\*b\*`, "")
	if strings.Contains(got, "<strong>") {
		t.Errorf("escaped markers must stay literal: %q", got)
	}
	if !strings.Contains(got, "&#42;") {
		t.Errorf("escaped markers should become entities: %q", got)
	}
}

func TestFormatText_NewlinesBecomeBreaks(t *testing.T) {
	got := format(t, "one\ntwo", "")
	if got != "one<br>two" {
		t.Errorf("expected <br>, got %q", got)
	}
}

func TestFormatText_RootEscapeIsBuildError(t *testing.T) {
	_, err := formatText("[leak](/../secret)", ".")
	var build *BuildError
	if !errors.As(err, &build) {
		t.Fatalf("expected BuildError, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	cases := []struct{ root, in, want string }{
		{".", "/img/cat.png", "img/cat.png"},
		{"..", "/img/cat.png", "../img/cat.png"},
		{"", "/img/cat.png", "/img/cat.png"},
		{"..", "relative.png", "relative.png"},
		{".", "https://example.com/x.png", "https://example.com/x.png"},
	}
	for _, c := range cases {
		got, err := resolvePath(c.root, c.in)
		if err != nil {
			t.Fatalf("resolvePath(%q, %q): %v", c.root, c.in, err)
		}
		if got != c.want {
			t.Errorf("resolvePath(%q, %q): expected %q, got %q", c.root, c.in, c.want, got)
		}
	}
}
