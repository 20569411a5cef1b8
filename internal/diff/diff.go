// Package diff renders a unified patch of the staged descriptor edit for
// dry runs. It uses github.com/pmezard/go-difflib/difflib to produce
// classic unified output (---/+++ headers, @@ hunks).
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// Context is the number of context lines in unified hunks.
	// If 0, defaults to 4.
	Context int
}

// Unified produces a unified patch for a -> b. An empty result means the
// two texts are identical.
func Unified(aName, bName string, a, b string, opt Options) (string, error) {
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 4
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(a),
		B:        splitLinesKeepNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	return difflib.GetUnifiedDiffString(u)
}

// splitLinesKeepNL splits into lines keeping newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
