// Package registrar sequences one registration pass: read the descriptor,
// discover candidate files, synthesize their records, patch the four
// descriptor regions, validate, and persist the result with a single
// atomic write.
package registrar

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"pbxpatch/internal/config"
	"pbxpatch/internal/discover"
	"pbxpatch/internal/ledger"
	"pbxpatch/internal/pbx"
	"pbxpatch/internal/validate"
)

// Options controls a single run.
type Options struct {
	DryRun bool      // stage everything but skip the write and the ledger
	Out    io.Writer // progress lines; nil discards
	Errw   io.Writer // warnings; nil discards
}

// Summary reports what one pass did.
type Summary struct {
	SourcesAdded   int // discovered sources plus extras
	ResourcesFound int
	ResourcesAdded int
	RegionsPatched int
	Warnings       []string
	Written        bool
}

// Result carries the staged texts for preview alongside the records and
// the run summary.
type Result struct {
	Before  string
	After   string
	Files   []pbx.FileReference
	Builds  []pbx.BuildFile
	Summary Summary
}

// Run executes one registration pass against cfg's descriptor. Discovery,
// write, and validation failures are fatal; a missing region anchor is
// reported as a warning and leaves that region unmodified.
func Run(cfg *config.Config, opts Options) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	errw := opts.Errw
	if errw == nil {
		errw = io.Discard
	}

	descriptor := cfg.DescriptorPath()
	fmt.Fprintf(out, "Reading %s\n", descriptor)
	before, err := pbx.Load(descriptor)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Scanning sources under %s\n", cfg.SourcesDir())
	sources, err := discover.Sources(cfg.SourcesDir())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "  found %d source files\n", len(sources))

	var resources []discover.Resource
	if dir := cfg.ResourcesDir(); dir != "" {
		fmt.Fprintf(out, "Scanning resources under %s\n", dir)
		resources, err = discover.Resources(dir)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "  found %d resource entries\n", len(resources))
	}

	res := &Result{Before: before}
	res.Summary.ResourcesFound = len(resources)

	srcFiles, srcBuilds := synthesizeSources(cfg, sources)
	res.Files = append(res.Files, srcFiles...)
	res.Builds = append(res.Builds, srcBuilds...)

	var resFiles []pbx.FileReference
	var resBuilds []pbx.BuildFile
	if cfg.Resources.Register {
		resFiles, resBuilds = synthesizeResources(cfg, resources)
		res.Files = append(res.Files, resFiles...)
		res.Builds = append(res.Builds, resBuilds...)
	}

	doc := before
	policy := cfg.Policy()
	patch := func(r pbx.Region, inserts []pbx.Insert) error {
		if len(inserts) == 0 {
			return nil
		}
		next, err := r.Patch(doc, inserts, policy)
		var nf *pbx.RegionNotFoundError
		if errors.As(err, &nf) {
			w := fmt.Sprintf("region %s left unmodified: anchor %q not found", nf.Role, nf.Anchor)
			res.Summary.Warnings = append(res.Summary.Warnings, w)
			fmt.Fprintln(errw, "WARNING:", w)
			return nil
		}
		if err != nil {
			return err
		}
		doc = next
		res.Summary.RegionsPatched++
		fmt.Fprintf(out, "Patched %s (+%d)\n", r.Role, len(inserts))
		return nil
	}

	type step struct {
		region  pbx.Region
		inserts []pbx.Insert
	}
	a := cfg.Anchors
	steps := []step{
		{pbx.SectionRegion(pbx.RoleFileReferences, "PBXFileReference"), recordInserts(res.Files)},
		{pbx.SectionRegion(pbx.RoleBuildFiles, "PBXBuildFile"), buildInserts(res.Builds)},
		{pbx.ListRegion(pbx.RoleGroupChildren, a.GroupID, a.GroupName, "children = ("), groupInserts(srcFiles)},
		{pbx.ListRegion(pbx.RolePhaseFiles, a.PhaseID, a.PhaseName, "files = ("), phaseInserts(srcBuilds)},
	}
	if cfg.Resources.Register {
		steps = append(steps,
			step{pbx.ListRegion(pbx.RoleGroupChildren, a.ResourcesGroupID, a.ResourcesGroupName, "children = ("), groupInserts(resFiles)},
			step{pbx.ListRegion(pbx.RolePhaseFiles, a.ResourcesPhaseID, a.ResourcesPhaseName, "files = ("), phaseInserts(resBuilds)},
		)
	}
	for _, s := range steps {
		if err := patch(s.region, s.inserts); err != nil {
			return nil, err
		}
	}
	res.After = doc
	res.Summary.SourcesAdded = len(srcFiles)
	res.Summary.ResourcesAdded = len(resFiles)

	if err := validate.Run(res.Before, res.After, res.Files, res.Builds); err != nil {
		return nil, fmt.Errorf("validating staged descriptor: %w", err)
	}

	if opts.DryRun {
		fmt.Fprintln(out, "Dry run: descriptor not written")
		return res, nil
	}

	descAbs, _ := filepath.Abs(descriptor)
	ledgerDir := ledger.Dir(cfg.CacheDir, descAbs)
	warnPriorRuns(errw, res, ledgerDir, policy)

	if err := pbx.Store(descriptor, res.After); err != nil {
		return nil, err
	}
	res.Summary.Written = true

	if err := ledger.Append(ledgerDir, runRecord(descAbs, res, policy)); err != nil {
		w := fmt.Sprintf("ledger not updated: %v", err)
		res.Summary.Warnings = append(res.Summary.Warnings, w)
		fmt.Fprintln(errw, "WARNING:", w)
	}

	fmt.Fprintf(out, "Registered %d source files and %d resources in %s (regions patched=%d, warnings=%d)\n",
		res.Summary.SourcesAdded, res.Summary.ResourcesAdded, descriptor,
		res.Summary.RegionsPatched, len(res.Summary.Warnings))
	return res, nil
}

// synthesizeSources builds records for the configured extras followed by
// every discovered source, each consuming two fresh identifiers.
func synthesizeSources(cfg *config.Config, sources []string) ([]pbx.FileReference, []pbx.BuildFile) {
	files := make([]pbx.FileReference, 0, len(sources)+len(cfg.Sources.Extras))
	builds := make([]pbx.BuildFile, 0, cap(files))
	for _, extra := range cfg.Sources.Extras {
		ref := pbx.NewFileReference(extra, pbx.FileTypeFor(extra, false))
		files = append(files, ref)
		builds = append(builds, pbx.NewBuildFile(ref, pbx.PhaseSources))
	}
	for _, rel := range sources {
		ref := pbx.NewFileReference(joinPrefix(cfg.Sources.Prefix, rel), pbx.FileTypeFor(rel, false))
		files = append(files, ref)
		builds = append(builds, pbx.NewBuildFile(ref, pbx.PhaseSources))
	}
	return files, builds
}

func synthesizeResources(cfg *config.Config, resources []discover.Resource) ([]pbx.FileReference, []pbx.BuildFile) {
	files := make([]pbx.FileReference, 0, len(resources))
	builds := make([]pbx.BuildFile, 0, len(resources))
	for _, r := range resources {
		isDir := r.Kind == discover.Directory
		ref := pbx.NewFileReference(joinPrefix(cfg.Resources.Prefix, r.RelPath), pbx.FileTypeFor(r.RelPath, isDir))
		files = append(files, ref)
		builds = append(builds, pbx.NewBuildFile(ref, pbx.PhaseResources))
	}
	return files, builds
}

func joinPrefix(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

func recordInserts(files []pbx.FileReference) []pbx.Insert {
	out := make([]pbx.Insert, len(files))
	for i, f := range files {
		out[i] = pbx.Insert{Text: f.Record(), Name: f.Name}
	}
	return out
}

func buildInserts(builds []pbx.BuildFile) []pbx.Insert {
	out := make([]pbx.Insert, len(builds))
	for i, b := range builds {
		out[i] = pbx.Insert{Text: b.Record(), Name: b.Name}
	}
	return out
}

func groupInserts(files []pbx.FileReference) []pbx.Insert {
	out := make([]pbx.Insert, len(files))
	for i, f := range files {
		out[i] = pbx.Insert{Text: f.GroupEntry(), Name: f.Name}
	}
	return out
}

func phaseInserts(builds []pbx.BuildFile) []pbx.Insert {
	out := make([]pbx.Insert, len(builds))
	for i, b := range builds {
		out[i] = pbx.Insert{Text: b.PhaseEntry(), Name: b.Name}
	}
	return out
}

// warnPriorRuns surfaces the duplication hazard of the append policy when
// the ledger shows this descriptor was already patched.
func warnPriorRuns(errw io.Writer, res *Result, dir string, policy pbx.DuplicatePolicy) {
	if policy != pbx.PolicyAppend {
		return
	}
	l, err := ledger.Load(dir)
	if err != nil || l == nil || len(l.Runs) == 0 {
		return
	}
	w := fmt.Sprintf("descriptor already patched by %d previous run(s); append policy will duplicate entries", len(l.Runs))
	res.Summary.Warnings = append(res.Summary.Warnings, w)
	fmt.Fprintln(errw, "WARNING:", w)
}

func runRecord(descAbs string, res *Result, policy pbx.DuplicatePolicy) ledger.Run {
	ids := make([]string, 0, len(res.Files)+len(res.Builds))
	for _, f := range res.Files {
		ids = append(ids, f.ID)
	}
	for _, b := range res.Builds {
		ids = append(ids, b.ID)
	}
	return ledger.Run{
		Descriptor:  descAbs,
		Policy:      string(policy),
		Sources:     res.Summary.SourcesAdded,
		Resources:   res.Summary.ResourcesAdded,
		Identifiers: ids,
		Warnings:    res.Summary.Warnings,
	}
}
