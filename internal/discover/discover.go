// Package discover provides deterministic, read-only traversal of source
// and resource trees. Results are root-relative, forward-slashed, and
// sorted lexicographically so repeated runs produce identical record order.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a discovered resource entry.
type Kind int

const (
	File Kind = iota
	Directory
)

// Resource is one discovered resource candidate.
type Resource struct {
	RelPath string
	Kind    Kind
}

const (
	// SourceExt is the suffix that marks a compilable source file.
	SourceExt = ".swift"
	// BundleExt marks directories that are shipped whole as one resource
	// (localization bundles); their contents are never visited.
	BundleExt = ".lproj"
)

// resourceExts is the allow-list of loose resource file suffixes.
var resourceExts = []string{".strings", ".js", ".py", ".json", ".icns"}

// Sources walks root and returns every source file, relative to root,
// sorted ascending. A missing or unreadable root is a fatal error.
func Sources(root string) ([]string, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), SourceExt) {
			return nil
		}
		rel, rerr := relativeTo(root, path)
		if rerr != nil {
			return rerr
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning sources under %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

// Resources walks root and returns resource candidates sorted by path.
// Bundle-suffixed directories are emitted as Directory entries and not
// descended into; other files are included when their suffix is on the
// allow-list.
func Resources(root string) ([]Resource, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	var out []Resource
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !strings.HasSuffix(d.Name(), BundleExt) {
				return nil
			}
			rel, rerr := relativeTo(root, path)
			if rerr != nil {
				return rerr
			}
			out = append(out, Resource{RelPath: rel, Kind: Directory})
			return filepath.SkipDir
		}
		if !hasResourceExt(d.Name()) {
			return nil
		}
		rel, rerr := relativeTo(root, path)
		if rerr != nil {
			return rerr
		}
		out = append(out, Resource{RelPath: rel, Kind: File})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning resources under %s: %w", root, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("discovery root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("discovery root %s: not a directory", root)
	}
	return nil
}

func relativeTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func hasResourceExt(name string) bool {
	for _, ext := range resourceExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
