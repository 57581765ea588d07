package page

import "strings"

// AttributeKind enumerates the recognized attribute keywords. The set is
// closed; anything else on a marker line is content, not an attribute.
type AttributeKind int

const (
	AttrID AttributeKind = iota
	AttrClass
	AttrAlt
	AttrSrc
	AttrTitle
	AttrSubtitle
	AttrBy
	AttrSource
	AttrURL
	AttrType
	AttrLink
	AttrHidden
	AttrShow
)

// Attribute is one typed key(+optional value) modifier attached to a
// section. Attributes are immutable once parsed; a section keeps them in
// source order.
type Attribute struct {
	Kind  AttributeKind
	Value string
}

var withArg = map[string]AttributeKind{
	"id":       AttrID,
	"class":    AttrClass,
	"alt":      AttrAlt,
	"src":      AttrSrc,
	"title":    AttrTitle,
	"subtitle": AttrSubtitle,
	"by":       AttrBy,
	"source":   AttrSource,
	"url":      AttrURL,
	"type":     AttrType,
	"link":     AttrLink,
}

var noArgs = map[string]AttributeKind{
	"hidden": AttrHidden,
	"show":   AttrShow,
}

// ParseAttribute classifies one marker-line body, splitting on the first
// ": " into name and value. ok is false when the body does not name a
// recognized attribute, which tells the caller to stop collecting
// attributes and treat the line as ordinary content.
func ParseAttribute(body string) (Attribute, bool, error) {
	name, value, hasValue := strings.Cut(body, ": ")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	if kind, ok := withArg[name]; ok {
		if !hasValue || value == "" {
			return Attribute{}, false, &MissingArgumentError{Attr: name}
		}
		return Attribute{Kind: kind, Value: value}, true, nil
	}
	if kind, ok := noArgs[name]; ok {
		if hasValue {
			return Attribute{}, false, &UnexpectedArgumentError{Attr: name, Value: value}
		}
		return Attribute{Kind: kind}, true, nil
	}
	return Attribute{}, false, nil
}

// attrValue returns the first attribute of the given kind.
func attrValue(attrs []Attribute, kind AttributeKind) (string, bool) {
	for _, attr := range attrs {
		if attr.Kind == kind {
			return attr.Value, true
		}
	}
	return "", false
}
