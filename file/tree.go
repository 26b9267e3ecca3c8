package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smallnest/agenttools/tool"
)

// TreeOptions controls Tree rendering.
type TreeOptions struct {
	// MaxDepth limits descent below the root's immediate entries: 0 lists
	// only the immediate entries and never descends, 1 adds one more level,
	// and a negative value means unlimited.
	MaxDepth int
	// DirsOnly leaves files out of the listing.
	DirsOnly bool
	// DirsFirst groups directories before files instead of interleaving
	// them in name order.
	DirsFirst bool
	// ShowHidden includes dot-prefixed entries.
	ShowHidden bool
	// MaxEntries caps the number of rendered entries. 0 means the default
	// of 10000. The result is marked truncated when the cap cuts the walk
	// short.
	MaxEntries int
}

// TreeResult is a rendered directory tree with its entry counts.
type TreeResult struct {
	Root        string `json:"root"`
	Rendered    string `json:"rendered"`
	Directories int    `json:"directories"`
	Files       int    `json:"files"`
	Truncated   bool   `json:"truncated,omitempty"`
}

const defaultMaxTreeEntries = 10000

// Tree renders the directory rooted at path as box-drawing ASCII art, the
// way the Unix tree command does. Entries are sorted case-insensitively for
// deterministic output. Symlinks are shown with their target but never
// followed. Unreadable subdirectories render an inline marker and the walk
// continues.
func Tree(ctx context.Context, path string, opts TreeOptions) (*TreeResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", tool.ErrNotDirectory, path)
	}

	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxTreeEntries
	}

	w := &treeWalker{opts: opts, maxEntries: maxEntries}
	root := filepath.Base(filepath.Clean(path))
	w.sb.WriteString(root + "/\n")

	if err := w.walk(ctx, path, "", 0); err != nil {
		return nil, err
	}

	return &TreeResult{
		Root:        path,
		Rendered:    w.sb.String(),
		Directories: w.dirs,
		Files:       w.files,
		Truncated:   w.truncated,
	}, nil
}

type treeWalker struct {
	opts       TreeOptions
	maxEntries int
	sb         strings.Builder
	rendered   int
	dirs       int
	files      int
	truncated  bool
}

// walk renders the entries of dir at the given depth, where the root's
// immediate entries sit at depth 0.
func (w *treeWalker) walk(ctx context.Context, dir, prefix string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// The root was validated by Tree, so this is a subdirectory
		// failure: render the marker and keep going.
		w.sb.WriteString(prefix + "└── " + readErrorMarker(err) + "\n")
		return nil
	}

	entries = w.filter(entries)
	w.sort(entries)

	for i, entry := range entries {
		if w.rendered >= w.maxEntries {
			w.truncated = true
			return nil
		}

		last := i == len(entries)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		name := entry.Name()
		w.rendered++
		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			w.files++
			w.sb.WriteString(prefix + connector + name + symlinkSuffix(filepath.Join(dir, name)) + "\n")
		case entry.IsDir():
			w.dirs++
			w.sb.WriteString(prefix + connector + name + "/\n")
			if w.opts.MaxDepth < 0 || depth < w.opts.MaxDepth {
				if err := w.walk(ctx, filepath.Join(dir, name), childPrefix, depth+1); err != nil {
					return err
				}
			}
		default:
			w.files++
			w.sb.WriteString(prefix + connector + name + "\n")
		}
	}
	return nil
}

func (w *treeWalker) filter(entries []fs.DirEntry) []fs.DirEntry {
	kept := entries[:0]
	for _, entry := range entries {
		if !w.opts.ShowHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if w.opts.DirsOnly && !entry.IsDir() {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// sort orders case-insensitively with a case-sensitive tiebreak, grouping
// directories first when requested.
func (w *treeWalker) sort(entries []fs.DirEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if w.opts.DirsFirst && a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		la, lb := strings.ToLower(a.Name()), strings.ToLower(b.Name())
		if la != lb {
			return la < lb
		}
		return a.Name() < b.Name()
	})
}

func symlinkSuffix(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return " -> ?"
	}
	return " -> " + target
}

func readErrorMarker(err error) string {
	if os.IsPermission(err) {
		return "[permission denied]"
	}
	return fmt.Sprintf("[error: %v]", err)
}
