package page

import (
	"errors"
	"testing"
)

func TestParseAttribute_IDWithValue(t *testing.T) {
	attr, ok, err := ParseAttribute("id: foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected an attribute")
	}
	if attr.Kind != AttrID || attr.Value != "foo" {
		t.Errorf("expected id=foo, got kind=%d value=%q", attr.Kind, attr.Value)
	}
}

func TestParseAttribute_HiddenWithoutValue(t *testing.T) {
	attr, ok, err := ParseAttribute("hidden")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || attr.Kind != AttrHidden {
		t.Errorf("expected hidden attribute, got kind=%d (ok=%v)", attr.Kind, ok)
	}
}

func TestParseAttribute_HiddenRejectsArgument(t *testing.T) {
	_, _, err := ParseAttribute("hidden: x")
	var unexpected *UnexpectedArgumentError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedArgumentError, got %v", err)
	}
	if unexpected.Attr != "hidden" || unexpected.Value != "x" {
		t.Errorf("error should name the attribute and value, got %+v", unexpected)
	}
}

func TestParseAttribute_IDRequiresArgument(t *testing.T) {
	_, _, err := ParseAttribute("id")
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArgumentError, got %v", err)
	}
	if missing.Attr != "id" {
		t.Errorf("error should name the attribute, got %q", missing.Attr)
	}
}

func TestParseAttribute_UnknownIsNotAnError(t *testing.T) {
	// An unrecognized name signals the caller to stop collecting
	// attributes; it is not a parse failure.
	_, ok, err := ParseAttribute("bogus: value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("unrecognized name should not parse as an attribute")
	}
}

func TestParseAttribute_ColonWithoutSpaceIsNotASplit(t *testing.T) {
	_, ok, err := ParseAttribute("id:foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("the name/value split requires a ': ' separator")
	}
}
