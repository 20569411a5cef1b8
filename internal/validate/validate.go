// Package validate checks the mutated descriptor before it is persisted:
// referential integrity of the records added in this run and preservation
// of the document's brace/paren balance.
package validate

import (
	"fmt"
	"strings"

	"pbxpatch/internal/pbx"
)

// Run verifies the staged document. Every synthesized membership must
// back-reference a file identifier synthesized in the same run and
// present in the document, and patching must not change the document's
// brace or parenthesis balance.
func Run(before, after string, files []pbx.FileReference, builds []pbx.BuildFile) error {
	ids := make(map[string]struct{}, len(files))
	for _, f := range files {
		ids[f.ID] = struct{}{}
	}
	for _, b := range builds {
		if _, ok := ids[b.FileRef]; !ok {
			return fmt.Errorf("membership %s references unknown file identifier %s", b.ID, b.FileRef)
		}
		if strings.Contains(after, b.ID) && !strings.Contains(after, b.FileRef) {
			return fmt.Errorf("membership %s present without its file declaration %s", b.ID, b.FileRef)
		}
	}
	if d := balance(after, '{', '}') - balance(before, '{', '}'); d != 0 {
		return fmt.Errorf("patch changed brace balance by %d", d)
	}
	if d := balance(after, '(', ')') - balance(before, '(', ')'); d != 0 {
		return fmt.Errorf("patch changed parenthesis balance by %d", d)
	}
	return nil
}

func balance(s string, open, close byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			n++
		case close:
			n--
		}
	}
	return n
}
