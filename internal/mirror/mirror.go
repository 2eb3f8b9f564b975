// Package mirror reconciles a local directory against remote wiki state.
//
// A run is a full recomputation: fetch the page index, derive the desired
// filename and final content for every page, diff against what is on disk,
// and apply the minimal set of writes and deletions. The remote service is
// the sole source of truth; nothing ever flows back. Runs are idempotent: a
// second run against unchanged remote content performs no mutations and
// reports Changed=false.
package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"wikimirror/internal/atomicfile"
	"wikimirror/internal/audit"
	"wikimirror/internal/header"
	"wikimirror/internal/redmine"
	"wikimirror/internal/refmap"
	"wikimirror/internal/rewrite"
	"wikimirror/internal/titles"
)

// DefaultExtension is the filename extension used when none is configured.
const DefaultExtension = "md"

// Fetcher is the remote collaborator the reconciler pulls wiki state from.
// *redmine.Client satisfies it; tests substitute a fake.
type Fetcher interface {
	ListPages(ctx context.Context, project string) ([]redmine.PageStub, error)
	FetchPage(ctx context.Context, project, title string) (*redmine.Page, error)
}

// Options configures one mirror run.
type Options struct {
	// Project is the identifier of the wiki namespace being mirrored.
	Project string

	// BaseURL is the wiki service address, used when rewriting links.
	BaseURL string

	// OutputDir is the directory the mirror converges to remote state.
	OutputDir string

	// Extension is the filename extension without the dot (default "md").
	Extension string

	// DeleteStale removes local files not produced by the current run.
	DeleteStale bool

	// RewriteLinks converts intra-wiki references to relative file links.
	RewriteLinks bool

	// DryRun computes the full mutation set without touching the filesystem.
	DryRun bool

	// Debug populates the Log field of the result.
	Debug bool
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// Result is the externally observable outcome of a run.
type Result struct {
	// Changed is true iff at least one write or deletion occurred, or
	// would have occurred in dry-run mode.
	Changed bool `json:"changed"`

	// Synced lists the paths written (or due to be written), in page
	// index order.
	Synced []string `json:"synced"`

	// Deleted lists the stale paths removed (or due for removal), in
	// lexical order.
	Deleted []string `json:"deleted"`

	// Log carries the debug trail when debug logging is enabled.
	Log []string `json:"log,omitempty"`
}

// Run executes one full mirror pass.
//
// Fetch and decode failures are fatal: the run stops with an error and the
// returned Result still carries the debug trail and whatever had already
// been synced (prior writes are not rolled back). Per-page rewrite failures
// are not fatal; the page falls back to its pre-rewrite content.
func Run(ctx context.Context, fetcher Fetcher, opts Options) (*Result, error) {
	ext := opts.extension()
	trail := audit.New(opts.Debug)
	result := &Result{}
	finish := func() *Result {
		result.Log = trail.Lines()
		return result
	}

	trail.Logf("Fetching wiki index for project %q", opts.Project)
	index, err := fetcher.ListPages(ctx, opts.Project)
	if err != nil {
		return finish(), fmt.Errorf("fetch wiki index: %w", err)
	}
	trail.Logf("Index contains %d pages", len(index))

	pageTitles := make([]string, 0, len(index))
	for _, stub := range index {
		if strings.TrimSpace(stub.Title) == "" {
			trail.Logf("Skipping index entry with no title")
			continue
		}
		pageTitles = append(pageTitles, stub.Title)
	}

	var rewriter *rewrite.Rewriter
	if opts.RewriteLinks {
		rewriter = rewrite.New(opts.Project, opts.BaseURL, refmap.New(pageTitles, ext))
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return finish(), fmt.Errorf("create output directory: %w", err)
		}
	}
	trail.Logf("Output directory: %s", opts.OutputDir)

	seen := make(map[string]bool, len(pageTitles))
	for _, title := range pageTitles {
		filename := titles.FilenameFor(title, ext)
		if seen[filename] {
			trail.Logf("Filename collision: %q reuses %s (last write wins)", title, filename)
		}
		seen[filename] = true
		trail.Logf("Processing page %q -> %s", title, filename)

		page, err := fetcher.FetchPage(ctx, opts.Project, title)
		if err != nil {
			return finish(), fmt.Errorf("fetch page %q: %w", title, err)
		}

		content := page.Text
		if rewriter != nil {
			rewritten, rerr := rewriter.Rewrite(content)
			if rerr != nil {
				trail.Logf("Link rewrite failed for %q: %v", title, rerr)
			} else {
				content = rewritten
			}
		}
		content = header.Normalize(content, title)

		path := filepath.Join(opts.OutputDir, filename)
		if old, ok := readExisting(path); ok && old == content {
			trail.Logf("No change for %s", path)
			continue
		}

		trail.Logf("Writing updated content to %s", path)
		if !opts.DryRun {
			if err := atomicfile.WriteFile(path, []byte(content), 0); err != nil {
				return finish(), fmt.Errorf("write %s: %w", path, err)
			}
		}
		result.Changed = true
		result.Synced = append(result.Synced, path)
	}

	if opts.DeleteStale {
		if err := deleteStale(opts, ext, seen, trail, result); err != nil {
			return finish(), err
		}
	}

	return finish(), nil
}

// deleteStale removes files matching the configured extension that the
// current run did not produce. The scan is in lexical order so deletion
// reporting is deterministic.
func deleteStale(opts Options, ext string, seen map[string]bool, trail *audit.Trail, result *Result) error {
	entries, err := os.ReadDir(opts.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("scan output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if seen[name] {
			continue
		}
		path := filepath.Join(opts.OutputDir, name)
		trail.Logf("Deleting stale file %s", path)
		if !opts.DryRun {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("delete stale file %s: %w", path, err)
			}
		}
		result.Changed = true
		result.Deleted = append(result.Deleted, path)
	}

	return nil
}

// readExisting reads a file for diffing. Any read failure, including content
// that is not valid UTF-8, is treated as "absent" and forces a write.
func readExisting(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
