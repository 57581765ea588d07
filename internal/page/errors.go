package page

import "fmt"

// Parse errors identify the offending input fragment verbatim. All of them
// abort the parse of the page they occur in; no partial Page is returned.

// ExpectedSectionError reports a structural marker line with no keyword.
type ExpectedSectionError struct {
	Line string
}

func (e *ExpectedSectionError) Error() string {
	return fmt.Sprintf("expected section, got %q", e.Line)
}

// ExpectedAttributeError reports an attribute marker line with no body.
type ExpectedAttributeError struct {
	Line string
}

func (e *ExpectedAttributeError) Error() string {
	return fmt.Sprintf("expected attribute, got %q", e.Line)
}

// UnknownSectionError reports a marker keyword outside the closed grammar.
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Name)
}

// UnknownAttributeError reports an unrecognized attribute keyword under
// strict attribute parsing.
type UnknownAttributeError struct {
	Name string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q", e.Name)
}

// MissingArgumentError reports an argument-bearing attribute used without a
// value.
type MissingArgumentError struct {
	Attr string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing attribute argument in attribute %q", e.Attr)
}

// UnexpectedArgumentError reports a value given to an argument-free
// attribute.
type UnexpectedArgumentError struct {
	Attr  string
	Value string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("unexpected argument %q in attribute %q, this attribute takes no arguments", e.Value, e.Attr)
}

// EmptyTitleError reports a title or subtitle section with no content.
type EmptyTitleError struct {
	Kind string
}

func (e *EmptyTitleError) Error() string {
	return fmt.Sprintf("%s section is empty", e.Kind)
}

// MissingImageSourceError reports an img section with no source line.
type MissingImageSourceError struct{}

func (e *MissingImageSourceError) Error() string {
	return "missing image source"
}

// MissingVideoIDError reports a video embed with no ID line.
type MissingVideoIDError struct {
	Host string
}

func (e *MissingVideoIDError) Error() string {
	return fmt.Sprintf("expected %s video ID", e.Host)
}

// MalformedMetadataError reports a metadata line without a "key: value"
// shape.
type MalformedMetadataError struct {
	Line string
}

func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("malformed metadata line %q", e.Line)
}

// BuildError reports a failure while emitting HTML, currently a
// root-relative path that escapes the project root.
type BuildError struct {
	Path string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("path %q escapes the project root", e.Path)
}
