package pbx

import (
	"strings"
	"testing"

	"pbxpatch/internal/token"
)

func TestNewFileReferenceRecordShape(t *testing.T) {
	ref := NewFileReference("sources/AIPlugins/Chat.swift", FileTypeFor("Chat.swift", false))
	if !token.IsValid(ref.ID) {
		t.Fatalf("bad identifier: %q", ref.ID)
	}
	rec := ref.Record()
	want := ref.ID + " /* Chat.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; name = Chat.swift; path = sources/AIPlugins/Chat.swift; sourceTree = \"<group>\"; };"
	if rec != want {
		t.Fatalf("record = %q, want %q", rec, want)
	}
	if strings.Count(rec, "{") != strings.Count(rec, "}") {
		t.Fatalf("unbalanced braces: %q", rec)
	}
}

func TestNewBuildFileBackReference(t *testing.T) {
	ref := NewFileReference("sources/Main.swift", "sourcecode.swift")
	bf := NewBuildFile(ref, PhaseSources)
	if bf.FileRef != ref.ID {
		t.Fatalf("back-reference mismatch: %s vs %s", bf.FileRef, ref.ID)
	}
	if bf.ID == ref.ID {
		t.Fatalf("build file must consume its own identifier")
	}
	rec := bf.Record()
	if !strings.Contains(rec, "fileRef = "+ref.ID+" /* Main.swift */") {
		t.Fatalf("record missing fileRef: %q", rec)
	}
	if !strings.HasPrefix(rec, bf.ID+" /* Main.swift in Sources */") {
		t.Fatalf("record missing phase comment: %q", rec)
	}
	if got := bf.PhaseEntry(); got != bf.ID+" /* Main.swift in Sources */," {
		t.Fatalf("phase entry = %q", got)
	}
	if got := ref.GroupEntry(); got != ref.ID+" /* Main.swift */," {
		t.Fatalf("group entry = %q", got)
	}
}

func TestFileTypeFor(t *testing.T) {
	cases := []struct {
		path  string
		isDir bool
		want  string
	}{
		{"a/B.swift", false, "sourcecode.swift"},
		{"en.lproj", true, "folder"},
		{"Localizable.strings", false, "text.plist.strings"},
		{"plugin.js", false, "sourcecode.javascript"},
		{"tool.py", false, "text.script.python"},
		{"cfg.json", false, "text.json"},
		{"app.icns", false, "image.icns"},
		{"README", false, "text"},
	}
	for _, c := range cases {
		if got := FileTypeFor(c.path, c.isDir); got != c.want {
			t.Fatalf("FileTypeFor(%q,%v) = %q, want %q", c.path, c.isDir, got, c.want)
		}
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	if got := quoteIfNeeded("Plain.swift"); got != "Plain.swift" {
		t.Fatalf("plain name quoted: %q", got)
	}
	if got := quoteIfNeeded("With Space.swift"); got != `"With Space.swift"` {
		t.Fatalf("spaced name not quoted: %q", got)
	}
}
