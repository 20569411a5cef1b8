// Package ledger records what each registration run added to a descriptor.
// Ledgers live outside the project tree, keyed by a short hash of the
// descriptor's absolute path, and are written atomically so a crashed run
// never leaves a torn file.
//
// Conventions:
//   - The ledger root defaults to "tmp/.pbxcache" unless overridden.
//   - A per-descriptor ledger lives at: <base>/<pathKey>/runs.json
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultRoot  = "tmp/.pbxcache"
	runsFileName = "runs.json"
)

// Run is one completed registration pass.
type Run struct {
	Time        string   `json:"time"`
	Descriptor  string   `json:"descriptor"`
	Policy      string   `json:"policy"`
	Sources     int      `json:"sources"`
	Resources   int      `json:"resources"`
	Identifiers []string `json:"identifiers"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Ledger is the persisted run history for one descriptor.
type Ledger struct {
	FormatVersion string `json:"formatVersion"`
	Runs          []Run  `json:"runs"`
}

// PathKey returns a short, stable identifier for an absolute descriptor
// path: sha256 truncated to 12 hex chars.
func PathKey(abs string) string {
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:])[:12]
}

// Dir resolves the ledger directory for a descriptor path. An empty base
// falls back to the default root.
func Dir(base, descriptorAbs string) string {
	root := base
	if root == "" {
		root = defaultRoot
	}
	return filepath.Join(root, PathKey(descriptorAbs))
}

// Load reads the ledger from <dir>/runs.json. A missing file returns
// (nil, nil) so callers can treat it as "no previous runs".
func Load(dir string) (*Ledger, error) {
	b, err := os.ReadFile(filepath.Join(dir, runsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var l Ledger
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Append records r and writes the ledger atomically (temp file plus
// rename within dir).
func Append(dir string, r Run) error {
	if r.Time == "" {
		r.Time = time.Now().UTC().Format(time.RFC3339)
	}
	l, err := Load(dir)
	if err != nil {
		return err
	}
	if l == nil {
		l = &Ledger{FormatVersion: "1"}
	}
	l.Runs = append(l.Runs, r)
	return save(dir, l)
}

func save(dir string, l *Ledger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, runsFileName+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, runsFileName))
}
