package diff

import (
	"strings"
	"testing"
)

func TestUnifiedShowsAddedLines(t *testing.T) {
	a := "one\ntwo\n"
	b := "one\ntwo\nthree\n"
	body, err := Unified("a/project.pbxproj", "b/project.pbxproj", a, b, Options{Context: 2})
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	if !strings.Contains(body, "+three") {
		t.Fatalf("added line missing from patch:\n%s", body)
	}
	if !strings.Contains(body, "--- a/project.pbxproj") {
		t.Fatalf("missing from-header:\n%s", body)
	}
}

func TestUnifiedIdenticalInputsEmpty(t *testing.T) {
	body, err := Unified("a", "b", "same\n", "same\n", Options{})
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	if body != "" {
		t.Fatalf("expected empty patch, got %q", body)
	}
}
