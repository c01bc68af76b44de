package site

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pageturtle/pageturtle/internal/blog"
	"github.com/pageturtle/pageturtle/internal/config"
	"github.com/pageturtle/pageturtle/internal/feed"
)

// Writer owns the output directory. All of its errors are I/O failures and
// fatal to the build.
type Writer struct {
	outputDir string
	renderer  *Renderer
}

func NewWriter(outputDir string) (*Writer, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Writer{outputDir: filepath.Clean(outputDir), renderer: r}, nil
}

// Write renders and writes the whole site: index, tags, one page per post,
// the stylesheet, and the feed when RSS is enabled.
func (w *Writer) Write(cfg *config.Config, set []*blog.PublishablePost, tags []string, f *feed.Feed) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", w.outputDir, err)
	}

	index, err := w.renderer.RenderIndex(cfg, set)
	if err != nil {
		return err
	}
	if err := w.writeFile("index.html", []byte(index)); err != nil {
		return err
	}

	tagsHTML, err := w.renderer.RenderTags(cfg, tags)
	if err != nil {
		return err
	}
	if err := w.writeFile("tags.html", []byte(tagsHTML)); err != nil {
		return err
	}

	for _, p := range set {
		page, err := w.renderer.RenderPost(cfg, p)
		if err != nil {
			return err
		}
		if err := w.writeFile(p.Filename, []byte(page)); err != nil {
			return err
		}
	}

	if err := w.writeFile("styles.css", []byte(Stylesheet())); err != nil {
		return err
	}

	if cfg.EnableRSS && f != nil {
		path := filepath.Join(w.outputDir, "atom.xml")
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := feed.WriteAtom(file, *f); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

// CopyAssets copies each referenced asset from the post's source directory
// into the assets root of the output tree. Missing sources are logged and
// skipped; a post referencing a bad image should not sink the build.
func (w *Writer) CopyAssets(sourceDir string, refs []blog.AssetReference) error {
	for _, ref := range refs {
		src := filepath.Join(sourceDir, filepath.FromSlash(ref.OriginalPath))
		if _, err := os.Stat(src); err != nil {
			slog.Warn("referenced asset not found", "path", ref.OriginalPath, "resolved", src)
			continue
		}
		dst := filepath.Join(w.outputDir, filepath.FromSlash(strings.TrimPrefix(ref.FinalPath, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create assets directory: %w", err)
		}
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copy asset %s: %w", ref.OriginalPath, err)
		}
	}
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.outputDir, name)
	slog.Debug("writing file", "path", path)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
