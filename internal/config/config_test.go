package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbxpatch/internal/pbx"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, pbx.PolicyAppend, cfg.Policy())
	assert.Equal(t, filepath.Join(".", "Squirrel.xcodeproj", "project.pbxproj"), cfg.DescriptorPath())
}

func TestReadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbxpatch.yaml")
	data := `
root: /proj
descriptor: App.xcodeproj/project.pbxproj
sources:
  dir: Sources/New
  prefix: Sources/New
  extras:
    - Sources/Bootstrap.swift
on_duplicate: skip
anchors:
  group_id: AAAA000000000000000000AA
  group_name: Sources
  phase_id: BBBB000000000000000000BB
  phase_name: Sources
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", "App.xcodeproj", "project.pbxproj"), cfg.DescriptorPath())
	assert.Equal(t, filepath.Join("/proj", "Sources", "New"), cfg.SourcesDir())
	assert.Equal(t, pbx.PolicySkip, cfg.Policy())
	assert.Equal(t, []string{"Sources/Bootstrap.swift"}, cfg.Sources.Extras)
	// Untouched sections keep their defaults.
	assert.Equal(t, "Resources/AIPlugins", cfg.Resources.Dir)
	assert.False(t, cfg.Resources.Register)
}

func TestReadRejectsBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbxpatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("on_duplicate: maybe\n"), 0o644))
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_duplicate")
}

func TestValidateRequiresResourceAnchorsWhenRegistering(t *testing.T) {
	cfg := Default()
	cfg.Resources.Register = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resources_group_id")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
