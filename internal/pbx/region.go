package pbx

import (
	"fmt"
	"strings"

	"pbxpatch/internal/textutil"
)

// Region roles, used in warnings and ledger records.
const (
	RoleFileReferences = "file-references"
	RoleBuildFiles     = "build-files"
	RoleGroupChildren  = "group-children"
	RolePhaseFiles     = "phase-files"
)

// DuplicatePolicy controls what happens when a record with the same
// display name is already present in the target region.
type DuplicatePolicy string

const (
	// PolicyAppend inserts unconditionally. Re-running against an
	// already-patched descriptor duplicates every entry.
	PolicyAppend DuplicatePolicy = "append"
	// PolicySkip drops inserts whose display name is already present.
	PolicySkip DuplicatePolicy = "skip"
	// PolicyFail aborts the patch on the first duplicate name.
	PolicyFail DuplicatePolicy = "fail"
)

// RegionNotFoundError reports a missing anchor. Callers treat it as a
// per-region warning, not a fatal failure.
type RegionNotFoundError struct {
	Role   string
	Anchor string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region %s: anchor %q not found", e.Role, e.Anchor)
}

// Insert is one line to be spliced into a region, paired with the display
// name used for duplicate detection.
type Insert struct {
	Text string // record or back-reference line, without indentation
	Name string
}

// Region locates one editable span of the descriptor. Two anchor styles
// exist: marker sections (Begin/End comment pair) and record-owned lists
// (a unique record header followed by an opener, closed by ");").
type Region struct {
	Role   string
	Begin  string // section style: literal begin marker
	End    string // section style: literal end marker
	Header string // list style: record header unique in the document
	Opener string // list style: list opener after the header
	Indent string // fallback indentation for inserted lines
}

const listCloser = ");"

// SectionRegion describes a marker-delimited section such as
// "/* Begin PBXFileReference section */ ... /* End ... */".
func SectionRegion(role, section string) Region {
	return Region{
		Role:   role,
		Begin:  "/* Begin " + section + " section */",
		End:    "/* End " + section + " section */",
		Indent: "\t\t",
	}
}

// ListRegion describes the membership list owned by the record with the
// given identifier, e.g. a group's children or a phase's files. The
// identifier must occur exactly once in the document for the first-match
// splice to be safe; well-known group and phase identifiers satisfy this.
func ListRegion(role, id, comment, opener string) Region {
	return Region{
		Role:   role,
		Header: id + " /* " + comment + " */ = {",
		Opener: opener,
		Indent: "\t\t\t\t",
	}
}

// Patch splices the inserts at the end of the region's existing content,
// preserving the document's line terminator and the region's indentation.
// The rest of the document is returned untouched. A missing anchor yields
// a *RegionNotFoundError; a duplicate under PolicyFail yields an error
// naming the offending entry.
func (r Region) Patch(doc string, inserts []Insert, policy DuplicatePolicy) (string, error) {
	insertAt, content, err := r.locate(doc)
	if err != nil {
		return doc, err
	}
	kept, err := filterDuplicates(r.Role, content, inserts, policy)
	if err != nil {
		return doc, err
	}
	if len(kept) == 0 {
		return doc, nil
	}
	eol := textutil.DetectEOL(doc)
	indent := textutil.LastLineIndent(content, r.Indent)
	lines := make([]string, len(kept))
	for i, in := range kept {
		lines[i] = in.Text
	}
	return doc[:insertAt] + textutil.JoinLines(lines, indent, eol) + doc[insertAt:], nil
}

// locate resolves the region and returns the byte offset at which new
// lines are spliced (immediately before the terminator that precedes the
// closing marker) plus the region's existing content.
func (r Region) locate(doc string) (int, string, error) {
	eol := textutil.DetectEOL(doc)
	if r.Header != "" {
		return r.locateList(doc, eol)
	}
	begin := strings.Index(doc, r.Begin)
	if begin < 0 {
		return 0, "", &RegionNotFoundError{Role: r.Role, Anchor: r.Begin}
	}
	start := begin + len(r.Begin)
	rel := strings.Index(doc[start:], r.End)
	if rel < 0 {
		return 0, "", &RegionNotFoundError{Role: r.Role, Anchor: r.End}
	}
	content := doc[start : start+rel]
	insertAt := start + rel
	if k := strings.LastIndex(content, eol); k >= 0 {
		// Splice before the terminator that leads into the end marker's
		// line, so the marker keeps its own line.
		insertAt = start + k
		content = content[:k]
	}
	return insertAt, content, nil
}

func (r Region) locateList(doc, eol string) (int, string, error) {
	head := strings.Index(doc, r.Header)
	if head < 0 {
		return 0, "", &RegionNotFoundError{Role: r.Role, Anchor: r.Header}
	}
	openRel := strings.Index(doc[head:], r.Opener)
	if openRel < 0 {
		return 0, "", &RegionNotFoundError{Role: r.Role, Anchor: r.Opener}
	}
	start := head + openRel + len(r.Opener)
	closeRel := strings.Index(doc[start:], listCloser)
	if closeRel < 0 {
		return 0, "", &RegionNotFoundError{Role: r.Role, Anchor: listCloser}
	}
	content := doc[start : start+closeRel]
	insertAt := start + closeRel
	if k := strings.LastIndex(content, eol); k >= 0 {
		insertAt = start + k
		content = content[:k]
	}
	return insertAt, content, nil
}

func filterDuplicates(role, content string, inserts []Insert, policy DuplicatePolicy) ([]Insert, error) {
	if policy == PolicyAppend || policy == "" {
		return inserts, nil
	}
	kept := inserts[:0:0]
	for _, in := range inserts {
		// Display names appear only inside "/* name */" or "/* name in
		// Phase */" comment trailers, so a prefix match on the comment
		// opener is specific enough.
		if in.Name != "" && strings.Contains(content, "/* "+in.Name+" ") {
			if policy == PolicyFail {
				return nil, fmt.Errorf("region %s: %s already present", role, in.Name)
			}
			continue
		}
		kept = append(kept, in)
	}
	return kept, nil
}
