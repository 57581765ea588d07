package page

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Reader is a single-lookahead line cursor over an input document. At most
// one unconsumed line is cached between calls, so peeking and consuming are
// independently testable operations.
type Reader struct {
	scanner *bufio.Scanner
	peek    *string
}

// NewReader wraps r in a line cursor.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc}
}

// Peek returns the next unconsumed line without advancing. ok is false at
// end of input.
func (r *Reader) Peek() (line string, ok bool, err error) {
	if r.peek == nil {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return "", false, err
			}
			return "", false, nil
		}
		line := r.scanner.Text()
		r.peek = &line
	}
	return *r.peek, true, nil
}

// Next consumes and returns the next line.
func (r *Reader) Next() (string, bool, error) {
	line, ok, err := r.Peek()
	r.peek = nil
	return line, ok, err
}

// NextIf consumes the next line only if pred accepts it; otherwise the
// cursor is left unchanged.
func (r *Reader) NextIf(pred func(string) bool) (string, bool, error) {
	line, ok, err := r.Peek()
	if err != nil || !ok || !pred(line) {
		return "", false, err
	}
	r.peek = nil
	return line, true, nil
}

// NextIfMap consumes the next line only if m accepts it, substituting the
// transformed value.
func (r *Reader) NextIfMap(m func(string) (string, bool)) (string, bool, error) {
	line, ok, err := r.Peek()
	if err != nil || !ok {
		return "", false, err
	}
	mapped, ok := m(line)
	if !ok {
		return "", false, nil
	}
	r.peek = nil
	return mapped, true, nil
}

// pushBack restores a just-consumed line into the peek cache.
func (r *Reader) pushBack(line string) {
	r.peek = &line
}

// SkipBlanks consumes whitespace-only lines.
func (r *Reader) SkipBlanks() error {
	for {
		_, ok, err := r.NextIf(func(line string) bool { return strings.TrimSpace(line) == "" })
		if err != nil || !ok {
			return err
		}
	}
}

// nextText accumulates lines while filter accepts them. In flowed mode runs
// of non-blank lines join with single spaces and any run of blank lines
// becomes a single paragraph break; in raw mode every line is kept verbatim
// with only the trailing boundary trimmed.
func (r *Reader) nextText(filter func(string) (string, bool), raw bool) (string, error) {
	if err := r.SkipBlanks(); err != nil {
		return "", err
	}
	var buf []byte
	for {
		line, ok, err := r.NextIfMap(filter)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if raw {
			buf = append(buf, line...)
			buf = append(buf, '\n')
			continue
		}
		if strings.TrimSpace(line) == "" {
			if len(buf) > 0 && buf[len(buf)-1] != '\n' {
				buf = append(buf, '\n')
			}
			continue
		}
		if len(buf) > 0 && buf[len(buf)-1] != '\n' {
			buf = append(buf, ' ')
		}
		buf = append(buf, strings.TrimSpace(line)...)
	}
	if raw {
		return strings.TrimRightFunc(string(buf), unicode.IsSpace), nil
	}
	return strings.TrimSpace(string(buf)), nil
}

func (r *Reader) nextTextUntil(until func(string) bool, raw bool) (string, error) {
	return r.nextText(func(line string) (string, bool) {
		if until(line) {
			return "", false
		}
		return line, true
	}, raw)
}

// nextTextUntilTag reads until the explicit end marker owned by this call (a
// closing fence or a "/tag" marker line) and consumes that marker.
func (r *Reader) nextTextUntilTag(tag string, raw bool) (string, error) {
	text, err := r.nextTextUntil(func(line string) bool {
		if tag == "```" && strings.TrimSpace(line) == "```" {
			return true
		}
		if body, ok := stripSectionPrefix(line); ok {
			if closed, ok := strings.CutPrefix(body, "/"); ok && closed == tag {
				return true
			}
		}
		return false
	}, raw)
	if err != nil {
		return "", err
	}
	_, _, err = r.Next()
	return text, err
}

func (r *Reader) nextTextUntilSection(raw bool) (string, error) {
	return r.nextTextUntil(hasSectionPrefix, raw)
}

// nextList collects entries recognized by filter. Each entry flows until the
// next entry or structural marker, so an entry may span several lines.
func (r *Reader) nextList(filter func(string) bool) ([]string, error) {
	if err := r.SkipBlanks(); err != nil {
		return nil, err
	}
	var list []string
	for {
		line, ok, err := r.Peek()
		if err != nil {
			return nil, err
		}
		if !ok || !filter(line) {
			break
		}
		first := true
		entry, err := r.nextTextUntil(func(line string) bool {
			if first {
				first = false
				return false
			}
			return hasSectionPrefix(line) || filter(line)
		}, false)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
		if err := r.SkipBlanks(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *Reader) nextListPrefixed(prefix string) ([]string, error) {
	entries, err := r.nextList(func(line string) bool { return strings.HasPrefix(line, prefix) })
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		entries[i] = strings.TrimPrefix(entry, prefix)
	}
	return entries, nil
}
