package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pageturtle/pageturtle/internal/blog"
	"github.com/pageturtle/pageturtle/internal/config"
	"github.com/pageturtle/pageturtle/internal/feed"
	"github.com/pageturtle/pageturtle/internal/metrics"
)

// allowedExtensions are the content file types picked up by a build.
var allowedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsContentPath reports whether path has an allowed content extension.
func IsContentPath(path string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Failure is a per-document compile or publish failure. Failures are
// collected, not fatal: the build still writes every post that succeeded.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes one build pass.
type Report struct {
	Published []*blog.PublishablePost
	Failures  []Failure
}

// Builder runs one full build pass per call. Every call re-walks and
// re-reads the content tree and re-parses everything through a fresh
// compiler; nothing is reused across passes.
type Builder struct {
	ContentDir string
	OutputDir  string
	Config     *config.Config
	Now        func() time.Time
	Recorder   metrics.Recorder
}

func NewBuilder(contentDir, outputDir string, cfg *config.Config) *Builder {
	return &Builder{
		ContentDir: contentDir,
		OutputDir:  outputDir,
		Config:     cfg,
		Now:        time.Now,
		Recorder:   metrics.NoopRecorder{},
	}
}

// Build compiles the content tree and writes the site. Per-document
// failures end up in the report; I/O and configuration problems abort with
// an error.
func (b *Builder) Build() (*Report, error) {
	started := b.Now()
	report, err := b.build()
	if err != nil {
		b.Recorder.IncBuildOutcome("failed")
		return nil, err
	}
	b.Recorder.ObserveBuildDuration(b.Now().Sub(started))
	b.Recorder.IncBuildOutcome("success")
	b.Recorder.SetPostsPublished(len(report.Published))
	return report, nil
}

func (b *Builder) build() (*Report, error) {
	compiler := blog.NewCompiler()
	report := &Report{}

	type sourced struct {
		path string
		post *blog.Post
	}
	var posts []sourced

	// WalkDir visits files in lexical order, which keeps the pre-sort order
	// of the publish set deterministic across runs.
	err := filepath.WalkDir(b.ContentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsContentPath(path) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read content file %s: %w", path, err)
		}
		post, cerr := compiler.Compile(content)
		if cerr != nil {
			report.Failures = append(report.Failures, Failure{Path: path, Err: cerr})
			return nil
		}
		posts = append(posts, sourced{path: path, post: post})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content directory %s: %w", b.ContentDir, err)
	}

	sourceDirs := map[*blog.PublishablePost]string{}
	for _, s := range posts {
		pub, perr := compiler.PreparePublish(s.post)
		if perr != nil {
			report.Failures = append(report.Failures, Failure{Path: s.path, Err: perr})
			continue
		}
		sourceDirs[pub] = filepath.Dir(s.path)
		report.Published = append(report.Published, pub)
	}

	blog.ResolveFilenames(report.Published)
	blog.SortPublishSet(report.Published)
	tags := blog.CollectTags(report.Published)

	writer, err := NewWriter(b.OutputDir)
	if err != nil {
		return nil, err
	}

	var atom *feed.Feed
	if b.Config.EnableRSS {
		f := feed.Build(report.Published, b.Config, b.Now())
		atom = &f
	}
	if err := writer.Write(b.Config, report.Published, tags, atom); err != nil {
		return nil, err
	}
	for _, pub := range report.Published {
		if err := writer.CopyAssets(sourceDirs[pub], pub.Assets); err != nil {
			return nil, err
		}
	}

	for _, f := range report.Failures {
		slog.Warn("post failed to compile", "path", f.Path, "error", f.Err)
	}
	slog.Info("site built", "posts", len(report.Published), "failures", len(report.Failures), "output", b.OutputDir)

	return report, nil
}
