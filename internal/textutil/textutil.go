// Package textutil provides newline and indentation helpers for splicing
// lines into an existing document without disturbing its formatting.
package textutil

import "strings"

// DetectEOL returns the line terminator used by the document. A document
// containing any CRLF is treated as CRLF-terminated; everything else is LF.
func DetectEOL(s string) string {
	if strings.Contains(s, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// JoinLines prefixes every line with indent and joins them with eol.
// Each line gets a leading terminator so the block can be appended
// directly after existing region content.
func JoinLines(lines []string, indent, eol string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(eol)
		b.WriteString(indent)
		b.WriteString(ln)
	}
	return b.String()
}

// LastLineIndent returns the leading whitespace of the last non-blank line
// in s, or fallback when s has no non-blank line.
func LastLineIndent(s, fallback string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		ln := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimLeft(ln, " \t")
		if trimmed == "" {
			continue
		}
		return ln[:len(ln)-len(trimmed)]
	}
	return fallback
}
