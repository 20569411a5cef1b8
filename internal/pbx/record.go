// Package pbx implements the project-descriptor core: synthesis of the
// textual records that register a file with an Xcode project, and surgical
// patching of the four descriptor regions those records live in. The
// descriptor is never parsed into a tree; everything outside the located
// regions is preserved byte-for-byte.
package pbx

import (
	"fmt"
	"path"
	"strings"

	"pbxpatch/internal/token"
)

// Phase tags used in record comments and membership lists.
const (
	PhaseSources   = "Sources"
	PhaseResources = "Resources"
)

// FileReference declares one physical file to the project. The record is
// immutable once synthesized; its identifier is referenced by build-file
// records and membership lists.
type FileReference struct {
	ID   string
	Name string // display name, the file's base name
	Type string // lastKnownFileType classification
	Path string // project-relative path, forward slashes
}

// NewFileReference synthesizes a file declaration for relPath, consuming
// one fresh identifier. fileType follows the descriptor's classification
// strings (see FileTypeFor).
func NewFileReference(relPath, fileType string) FileReference {
	return FileReference{
		ID:   token.New(),
		Name: path.Base(relPath),
		Type: fileType,
		Path: relPath,
	}
}

// Record renders the declaration line, without leading indentation.
// sourceTree = "<group>" marks the path as group-relative.
func (r FileReference) Record() string {
	return fmt.Sprintf("%s /* %s */ = {isa = PBXFileReference; lastKnownFileType = %s; name = %s; path = %s; sourceTree = \"<group>\"; };",
		r.ID, r.Name, r.Type, quoteIfNeeded(r.Name), quoteIfNeeded(r.Path))
}

// GroupEntry renders the back-reference line for a group children list.
func (r FileReference) GroupEntry() string {
	return fmt.Sprintf("%s /* %s */,", r.ID, r.Name)
}

// BuildFile registers a FileReference with one build phase.
type BuildFile struct {
	ID      string
	FileRef string // identifier of the referenced FileReference
	Name    string
	Phase   string // PhaseSources or PhaseResources
}

// NewBuildFile synthesizes a phase membership for ref, consuming one
// fresh identifier.
func NewBuildFile(ref FileReference, phase string) BuildFile {
	return BuildFile{
		ID:      token.New(),
		FileRef: ref.ID,
		Name:    ref.Name,
		Phase:   phase,
	}
}

// Record renders the registration line, without leading indentation.
func (b BuildFile) Record() string {
	return fmt.Sprintf("%s /* %s in %s */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };",
		b.ID, b.Name, b.Phase, b.FileRef, b.Name)
}

// PhaseEntry renders the back-reference line for a build-phase files list.
func (b BuildFile) PhaseEntry() string {
	return fmt.Sprintf("%s /* %s in %s */,", b.ID, b.Name, b.Phase)
}

// FileTypeFor maps a path to the descriptor's lastKnownFileType string.
// isDir marks bundle-style directory resources.
func FileTypeFor(relPath string, isDir bool) string {
	if isDir {
		return "folder"
	}
	switch strings.ToLower(path.Ext(relPath)) {
	case ".swift":
		return "sourcecode.swift"
	case ".strings":
		return "text.plist.strings"
	case ".js":
		return "sourcecode.javascript"
	case ".py":
		return "text.script.python"
	case ".json":
		return "text.json"
	case ".icns":
		return "image.icns"
	default:
		return "text"
	}
}

// quoteIfNeeded wraps v in double quotes when it contains characters the
// descriptor grammar does not accept bare.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	if strings.ContainsAny(v, " \t\"+<>()") {
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return v
}
