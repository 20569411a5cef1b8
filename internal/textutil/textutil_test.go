package textutil

import "testing"

func TestDetectEOLPrefersCRLF(t *testing.T) {
	if got := DetectEOL("a\r\nb\n"); got != "\r\n" {
		t.Fatalf("expected CRLF, got %q", got)
	}
	if got := DetectEOL("a\nb\n"); got != "\n" {
		t.Fatalf("expected LF, got %q", got)
	}
}

func TestJoinLinesIndentsEveryLine(t *testing.T) {
	got := JoinLines([]string{"x", "y"}, "\t\t", "\n")
	want := "\n\t\tx\n\t\ty"
	if got != want {
		t.Fatalf("JoinLines = %q, want %q", got, want)
	}
	if JoinLines(nil, "\t", "\n") != "" {
		t.Fatalf("empty input should produce empty output")
	}
}

func TestLastLineIndentSkipsBlankLines(t *testing.T) {
	s := "\t\tfirst;\n\t\t\t\tsecond,\n\n"
	if got := LastLineIndent(s, "\t"); got != "\t\t\t\t" {
		t.Fatalf("indent = %q", got)
	}
	if got := LastLineIndent("\n \n", "\t"); got != "\t" {
		t.Fatalf("fallback not used: %q", got)
	}
}
