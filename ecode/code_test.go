package ecode

import (
	"net/http"
	"testing"
)

func TestTextAndStatus(t *testing.T) {
	if got := Text(NothingFound); got != "Resource not found" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := ToHTTPStatus(TemplateNotFound); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if got := ToHTTPStatus(123456); got != http.StatusInternalServerError {
		t.Fatalf("unknown codes map to 500, got %d", got)
	}
}

func TestRegister(t *testing.T) {
	Register(-2001, http.StatusTeapot, "teapot")
	if Text(-2001) != "teapot" || ToHTTPStatus(-2001) != http.StatusTeapot {
		t.Fatal("registered code not visible")
	}
}

func TestFieldMessages(t *testing.T) {
	if got := FieldIsRequired("template"); got != "template required" {
		t.Fatalf("unexpected %q", got)
	}
	if got := NotExist(); got != "does not exist" {
		t.Fatalf("unexpected %q", got)
	}
}
