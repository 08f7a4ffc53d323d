package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"texture-packer/internal/config"
	"texture-packer/internal/group"
	"texture-packer/internal/pack"
	"texture-packer/internal/texture"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrSourceMissing is returned when the source directory does not exist.
var ErrSourceMissing = errors.New("source directory does not exist")

// Confirmer asks before an existing source file is overwritten.
type Confirmer interface {
	Confirm(path string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(path string) bool

func (f ConfirmFunc) Confirm(path string) bool { return f(path) }

// Options holds everything one run needs.
type Options struct {
	Config   config.Config
	Validate bool
	Codec    pack.Decoder
	Confirm  Confirmer
	Log      *log.Logger
}

// Status of one group.
type Status int

const (
	StatusPacked Status = iota
	StatusSkipped
	StatusFailed
)

// Result holds the outcome of processing one group.
type Result struct {
	Group   string
	Status  Status
	Outputs []string
	Missing []string
	Error   string
}

// Summary describes a finished run.
type Summary struct {
	Groups  int
	Written int
	Skipped int
	Failed  int
	Elapsed time.Duration
	Results []Result
}

// Run discovers, groups, packs and saves every material in the source
// directory. Only a missing source directory or an unusable config is
// fatal; everything else is reported per group.
func Run(ctx context.Context, opts Options) (Summary, error) {
	start := time.Now()
	cfg := opts.Config
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	if opts.Codec == nil {
		opts.Codec = texture.NewCodec()
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	srcDir, err := filepath.Abs(cfg.SrcDir)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: resolve %s: %w", cfg.SrcDir, err)
	}
	destDir, err := filepath.Abs(cfg.DestDir)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: resolve %s: %w", cfg.DestDir, err)
	}
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return Summary{}, fmt.Errorf("batch: %s: %w", srcDir, ErrSourceMissing)
	}

	exts, added := SourceExtensions(cfg.Extensions)
	if added {
		logger.Info("Added .bmp to supported extensions")
	}

	files, err := group.Scan(srcDir, exts)
	if err != nil {
		return Summary{}, err
	}
	groups, unmatched := group.Build(files, srcDir, cfg.SuffixMap)
	for _, p := range unmatched {
		logger.Info("Skip: no valid suffix (see [map suffixes])", "path", p)
	}
	logger.Infof("Found %d texture group(s) to process", len(groups))

	r := &runner{
		cfg:       cfg,
		destDir:   destDir,
		destIsSrc: srcDir == destDir,
		validate:  opts.Validate,
		packer:    pack.New(opts.Codec, logger),
		confirm:   opts.Confirm,
		log:       logger,
	}

	keys := group.SortedKeys(groups)
	results := make([]Result, len(keys))
	ran := make([]bool, len(keys))
	var processed atomic.Int64

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					logger.Debugf("[%d/%d] groups processed", p, len(keys))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, key := range keys {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processGroup(groups[key])
			ran[i] = true
			processed.Add(1)
			return nil
		})
	}
	err = g.Wait()
	close(done)
	if err == nil {
		err = ctx.Err()
	}

	sum := Summary{Groups: len(groups), Elapsed: time.Since(start)}
	for i, res := range results {
		if !ran[i] {
			continue
		}
		sum.Results = append(sum.Results, res)
		sum.Written += len(res.Outputs)
		switch res.Status {
		case StatusSkipped:
			sum.Skipped++
		case StatusFailed:
			sum.Failed++
		}
	}
	if err != nil {
		return sum, fmt.Errorf("batch: %w", err)
	}
	return sum, nil
}

// SourceExtensions returns the extensions scanned for source files: exts
// plus ".bmp", which is always accepted. added reports whether ".bmp" had
// to be appended.
func SourceExtensions(exts []string) (out []string, added bool) {
	if slices.Contains(exts, ".bmp") {
		return exts, false
	}
	return append(slices.Clone(exts), ".bmp"), true
}

type runner struct {
	cfg       config.Config
	destDir   string
	destIsSrc bool
	validate  bool
	packer    *pack.Packer
	confirm   Confirmer
	log       *log.Logger

	// mu serializes directory creation and the overwrite prompt.
	mu sync.Mutex
}

func (r *runner) processGroup(g *group.Group) Result {
	name := g.BaseName()
	res := Result{Group: name}

	plan := r.cfg.Plan
	if !r.cfg.Overwrite {
		plan = r.filterExisting(g, plan)
	}

	if r.validate && len(plan) > 0 {
		ok, missing := pack.Validate(g.Members, plan)
		if !ok {
			r.log.Warn("Validation failed, skipping group",
				"group", name, "missing", missing, "available", g.Suffixes())
			res.Status = StatusSkipped
			res.Missing = missing
			return res
		}
		r.log.Info("Validation passed", "group", name)
	}

	if len(plan) == 0 {
		res.Status = StatusSkipped
		return res
	}

	packed := r.packer.PackGroup(g.Members, plan)

	for _, entry := range plan {
		outPath := r.outputPath(g, entry.Suffix)
		img := packed[entry.Suffix]
		if img == nil {
			r.log.Warn("Nothing to write, no source channels found", "path", outPath)
			continue
		}
		if err := r.ensureDir(filepath.Dir(outPath)); err != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
			r.log.Error("Create directory failed", "path", filepath.Dir(outPath), "err", err)
			return res
		}
		if r.destIsSrc && !r.confirmOverwrite(outPath) {
			r.log.Info("Cancel", "path", outPath)
			continue
		}
		if err := texture.Save(img, outPath, r.cfg.OutputFormat); err != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
			r.log.Error("Save failed", "path", outPath, "err", err)
			continue
		}
		res.Outputs = append(res.Outputs, outPath)
		r.log.Info("Save", "path", outPath)
	}

	if len(res.Outputs) == 0 && res.Status == StatusPacked {
		res.Status = StatusSkipped
	}
	return res
}

// outputPath names an output file. The naming scheme applies to the file
// name; the group's relative directory is kept.
func (r *runner) outputPath(g *group.Group, suffix string) string {
	dir, base := filepath.Split(g.BaseName())
	stem := r.cfg.ApplyNamingScheme(base, suffix)
	return filepath.Join(r.destDir, dir, stem+"."+r.cfg.OutputFormat)
}

// filterExisting drops plan entries whose output file is already present.
func (r *runner) filterExisting(g *group.Group, plan config.PackPlan) config.PackPlan {
	var out config.PackPlan
	for _, entry := range plan {
		p := r.outputPath(g, entry.Suffix)
		if _, err := os.Stat(p); err == nil {
			r.log.Info("Skip: file exists", "path", p)
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (r *runner) ensureDir(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	r.log.Info("Directory does not exist, creating it", "path", dir)
	return os.MkdirAll(dir, 0755)
}

// confirmOverwrite asks before replacing an existing file in the source
// directory. Without a Confirmer existing files are kept.
func (r *runner) confirmOverwrite(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := os.Stat(path); err != nil {
		return true
	}
	if r.confirm == nil {
		return false
	}
	return r.confirm.Confirm(path)
}
