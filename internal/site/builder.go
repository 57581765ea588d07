// Package site compiles a directory of page sources into HTML files.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/InfiniteCoder01/neohtml/internal/config"
	"github.com/InfiniteCoder01/neohtml/internal/page"
	"github.com/dustin/go-humanize"
)

// Builder walks a source directory and compiles every page it finds.
type Builder struct {
	cfg config.Config
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// result is the outcome of one page build.
type result struct {
	source     string
	output     string
	title      string
	categories []string
	size       int64
	err        error
}

// Build compiles every page under dir through a bounded worker pool. A
// failed page is logged and skipped; the rest of the batch still builds.
// Build reports an error if any page failed.
func (b *Builder) Build(ctx context.Context, dir string) error {
	start := time.Now()

	var pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != b.cfg.Extension {
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(pages)

	jobs := make(chan string)
	results := make(chan result, len(pages))
	var wg sync.WaitGroup
	for i := 0; i < b.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				results <- b.buildPage(dir, source)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, source := range pages {
			select {
			case jobs <- source:
			case <-ctx.Done():
				return
			}
		}
	}()
	wg.Wait()
	close(results)

	var built []result
	failed := 0
	for r := range results {
		if r.err != nil {
			failed++
			b.log.Error("page failed", "page", r.source, "error", r.err)
			continue
		}
		built = append(built, r)
		b.log.Info("page built", "page", r.source, "output", r.output, "size", humanize.Bytes(uint64(r.size)))
	}
	sort.Slice(built, func(i, j int) bool { return built[i].output < built[j].output })

	if b.cfg.SiteIndex && len(built) > 0 {
		if err := b.writeIndex(dir, built); err != nil {
			failed++
			b.log.Error("index failed", "error", err)
		}
	}

	b.log.Info("build finished",
		"pages", len(built),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(pages))
	}
	return nil
}

func (b *Builder) buildPage(dir, source string) result {
	res := result{source: source}

	pg, err := page.Load(source, b.cfg.Page())
	if err != nil {
		res.err = err
		return res
	}

	root, err := rootPrefix(dir, source)
	if err != nil {
		res.err = err
		return res
	}
	html, err := pg.Render(root)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", source, err)
		return res
	}

	res.output = strings.TrimSuffix(source, b.cfg.Extension) + ".html"
	if err := os.WriteFile(res.output, []byte(html), 0o644); err != nil {
		res.err = err
		return res
	}
	res.size = int64(len(html))
	res.title = pageTitle(pg, html)
	res.categories = pg.Categories()
	return res
}

// rootPrefix returns the relative path from the page's directory back to
// the site root, used to resolve root-relative references in the output.
func rootPrefix(dir, source string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(source), dir)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
