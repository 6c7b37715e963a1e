package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxParallel is used when SplitOptions.MaxParallel is not positive.
const DefaultMaxParallel = 4

// SplitOptions configures WriteSplit.
type SplitOptions struct {
	Dir         string
	TagPrefix   string
	Render      changelog.RenderOptions
	MaxParallel int
}

// SplitResult describes one per-release file.
type SplitResult struct {
	Version string
	Path    string
	Written bool // false when the file already had this content
}

// FileName returns <tag_prefix><version>.md. Path separators in the version
// are replaced so every release stays inside the target directory.
func FileName(version, tagPrefix string) string {
	name := version
	if tagPrefix != "" && !strings.HasPrefix(version, tagPrefix) {
		name = tagPrefix + version
	}
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name + ".md"
}

// WriteSplit renders every release as a standalone changelog and writes them
// concurrently into opts.Dir. Results follow the order of releases.
// All releases are rendered before any file is written.
func WriteSplit(ctx context.Context, releases []changelog.Release, opts SplitOptions) ([]SplitResult, error) {
	results := make([]SplitResult, len(releases))
	docs := make([][]byte, len(releases))
	seen := make(map[string]string, len(releases))

	for i := range releases {
		name := FileName(releases[i].Version, opts.TagPrefix)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("releases %s and %s both map to %s", prev, releases[i].Version, name)
		}
		seen[name] = releases[i].Version

		doc, err := changelog.RenderRelease(releases[i], opts.Render)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", releases[i].Version, err)
		}
		docs[i] = []byte(doc)
		results[i] = SplitResult{Version: releases[i].Version, Path: filepath.Join(opts.Dir, name)}
	}

	limit := opts.MaxParallel
	if limit <= 0 {
		limit = DefaultMaxParallel
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			written, err := WriteIfChanged(results[i].Path, docs[i])
			if err != nil {
				return fmt.Errorf("writing %s: %w", results[i].Path, err)
			}
			results[i].Written = written
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
