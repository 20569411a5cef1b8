// Package config handles reading pbxpatch.yaml, the run configuration
// that names the descriptor, the scan roots, the region anchors, and the
// duplicate policy. Everything the original workflow hard-coded lives
// here so the same pipeline can target any project.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pbxpatch/internal/pbx"
)

// DefaultFile is the configuration file name looked up in the working
// directory when no explicit path is given.
const DefaultFile = "pbxpatch.yaml"

// Config is the top-level structure for pbxpatch.yaml.
type Config struct {
	Root        string    `yaml:"root"`       // project root; relative paths resolve against it
	Descriptor  string    `yaml:"descriptor"` // descriptor path, relative to root
	Sources     Sources   `yaml:"sources"`
	Resources   Resources `yaml:"resources"`
	Anchors     Anchors   `yaml:"anchors"`
	OnDuplicate string    `yaml:"on_duplicate"` // append | skip | fail
	CacheDir    string    `yaml:"cache_dir"`    // ledger root; empty uses the default
}

// Sources configures source discovery and registration.
type Sources struct {
	Dir    string   `yaml:"dir"`    // scan root, relative to Root
	Prefix string   `yaml:"prefix"` // path prefix recorded into file declarations
	Extras []string `yaml:"extras"` // project-relative files registered ahead of the scan
}

// Resources configures resource discovery. Registration is off by
// default; discovered resources are then only counted in the summary.
type Resources struct {
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	Register bool   `yaml:"register"`
}

// Anchors names the records that own the membership lists. The group and
// phase identifiers must each occur exactly once in the descriptor.
type Anchors struct {
	GroupID   string `yaml:"group_id"`
	GroupName string `yaml:"group_name"`
	PhaseID   string `yaml:"phase_id"`
	PhaseName string `yaml:"phase_name"`

	// Targets for resource registration; only used when
	// resources.register is true.
	ResourcesGroupID   string `yaml:"resources_group_id"`
	ResourcesGroupName string `yaml:"resources_group_name"`
	ResourcesPhaseID   string `yaml:"resources_phase_id"`
	ResourcesPhaseName string `yaml:"resources_phase_name"`
}

// Default returns the configuration matching the original workflow's
// compiled-in project layout.
func Default() *Config {
	return &Config{
		Root:       ".",
		Descriptor: "Squirrel.xcodeproj/project.pbxproj",
		Sources: Sources{
			Dir:    "sources/AIPlugins",
			Prefix: "sources/AIPlugins",
			Extras: []string{"sources/AIPluginWindowManager.swift"},
		},
		Resources: Resources{
			Dir:    "Resources/AIPlugins",
			Prefix: "Resources/AIPlugins",
		},
		Anchors: Anchors{
			GroupID:   "080E96DDFE201D6D7F000001",
			GroupName: "Sources",
			PhaseID:   "8D11072C0486CEB800E47090",
			PhaseName: "Sources",
		},
		OnDuplicate: string(pbx.PolicyAppend),
	}
}

// Read loads the configuration from path, layering the file's values
// over Default and validating the result.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the run cannot proceed without.
func (c *Config) Validate() error {
	if c.Descriptor == "" {
		return fmt.Errorf("config: descriptor path is required")
	}
	if c.Sources.Dir == "" {
		return fmt.Errorf("config: sources.dir is required")
	}
	switch pbx.DuplicatePolicy(c.OnDuplicate) {
	case pbx.PolicyAppend, pbx.PolicySkip, pbx.PolicyFail, "":
	default:
		return fmt.Errorf("config: on_duplicate must be append, skip, or fail (got %q)", c.OnDuplicate)
	}
	if c.Anchors.GroupID == "" || c.Anchors.PhaseID == "" {
		return fmt.Errorf("config: anchors.group_id and anchors.phase_id are required")
	}
	if c.Resources.Register && (c.Anchors.ResourcesGroupID == "" || c.Anchors.ResourcesPhaseID == "") {
		return fmt.Errorf("config: resource registration needs resources_group_id and resources_phase_id anchors")
	}
	return nil
}

// Policy returns the configured duplicate policy, defaulting to append.
func (c *Config) Policy() pbx.DuplicatePolicy {
	if c.OnDuplicate == "" {
		return pbx.PolicyAppend
	}
	return pbx.DuplicatePolicy(c.OnDuplicate)
}

// DescriptorPath resolves the descriptor location against the root.
func (c *Config) DescriptorPath() string { return c.resolve(c.Descriptor) }

// SourcesDir resolves the source scan root.
func (c *Config) SourcesDir() string { return c.resolve(c.Sources.Dir) }

// ResourcesDir resolves the resource scan root; empty when unset.
func (c *Config) ResourcesDir() string {
	if c.Resources.Dir == "" {
		return ""
	}
	return c.resolve(c.Resources.Dir)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
