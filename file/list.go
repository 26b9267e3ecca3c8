package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/smallnest/agenttools/tool"
)

// ListOptions controls List.
type ListOptions struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Pattern filters entry names with a glob like "*.go".
	Pattern string
	// ShowHidden includes dot-prefixed entries.
	ShowHidden bool
	// DirsOnly and FilesOnly restrict the entry kinds.
	DirsOnly  bool
	FilesOnly bool
	// MaxResults caps the listing. 0 means the default of 1000.
	MaxResults int
}

// Entry is one listed file or directory.
type Entry struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	IsDir   bool   `json:"is_dir"`
	ModTime string `json:"mod_time"`
}

// ListResult is a directory listing.
type ListResult struct {
	Root      string  `json:"root"`
	Entries   []Entry `json:"entries"`
	Truncated bool    `json:"truncated,omitempty"`
}

const defaultMaxListResults = 1000

// List returns the entries under root in walk order, which is lexicographic
// per directory. Paths are relative to root.
func List(ctx context.Context, root string, opts ListOptions) (*ListResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", tool.ErrNotDirectory, root)
	}
	if opts.Pattern != "" {
		if _, err := filepath.Match(opts.Pattern, "probe"); err != nil {
			return nil, tool.Invalidf("pattern", "bad glob %q: %v", opts.Pattern, err)
		}
	}
	if opts.DirsOnly && opts.FilesOnly {
		return nil, tool.Invalidf("dirs_only", "cannot combine dirs_only and files_only")
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxListResults
	}

	result := &ListResult{Root: root, Entries: []Entry{}}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal.
			if path == root {
				return walkErr
			}
			return nil
		}
		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(d.Name(), ".")
		if hidden && !opts.ShowHidden {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if len(result.Entries) >= maxResults {
			result.Truncated = true
			return fs.SkipAll
		}

		if keepEntry(d, opts) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			entry := Entry{Path: rel, Name: d.Name(), IsDir: d.IsDir()}
			if fi, infoErr := d.Info(); infoErr == nil {
				entry.Size = fi.Size()
				entry.ModTime = fi.ModTime().UTC().Format(time.RFC3339)
			}
			result.Entries = append(result.Entries, entry)
		}

		if d.IsDir() && !opts.Recursive {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return result, nil
}

func keepEntry(d fs.DirEntry, opts ListOptions) bool {
	if opts.DirsOnly && !d.IsDir() {
		return false
	}
	if opts.FilesOnly && d.IsDir() {
		return false
	}
	if opts.Pattern != "" {
		ok, err := filepath.Match(opts.Pattern, d.Name())
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// SearchOptions controls Search.
type SearchOptions struct {
	// Query is the text to look for. With Regex set it is compiled as a
	// Go regular expression, otherwise it matches as a substring.
	Query string
	Regex bool
	// CaseSensitive turns off the default case folding.
	CaseSensitive bool
	// Pattern restricts the searched files with a name glob.
	Pattern string
	// MaxMatches caps the result. 0 means the default of 200.
	MaxMatches int
}

// SearchMatch is one matching line.
type SearchMatch struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// SearchResult is the outcome of a text search.
type SearchResult struct {
	Root         string        `json:"root"`
	Matches      []SearchMatch `json:"matches"`
	FilesScanned int           `json:"files_scanned"`
	FilesSkipped int           `json:"files_skipped"`
	Truncated    bool          `json:"truncated,omitempty"`
}

const defaultMaxSearchMatches = 200

// Search scans the text files under root line by line. Binary and
// unreadable files are skipped and counted, never fatal. Paths in matches
// are relative to root and line numbers are 1-based.
func Search(ctx context.Context, root string, opts SearchOptions) (*SearchResult, error) {
	if opts.Query == "" {
		return nil, tool.Invalidf("query", "must not be empty")
	}

	var re *regexp.Regexp
	if opts.Regex {
		pattern := opts.Query
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern: %v", tool.ErrInvalidInput, err)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", tool.ErrNotDirectory, root)
	}

	maxMatches := opts.MaxMatches
	if maxMatches <= 0 {
		maxMatches = defaultMaxSearchMatches
	}
	needle := opts.Query
	if !opts.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	result := &SearchResult{Root: root, Matches: []SearchMatch{}}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			result.FilesSkipped++
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}
		if opts.Pattern != "" {
			if ok, _ := filepath.Match(opts.Pattern, d.Name()); !ok {
				return nil
			}
		}

		if result.Truncated {
			return fs.SkipAll
		}
		searchFile(path, root, re, needle, opts.CaseSensitive, maxMatches, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", root, err)
	}
	return result, nil
}

func searchFile(path, root string, re *regexp.Regexp, needle string, caseSensitive bool, maxMatches int, result *SearchResult) {
	f, err := os.Open(path)
	if err != nil {
		result.FilesSkipped++
		return
	}
	defer f.Close()

	probe := make([]byte, binaryProbeSize)
	n, _ := f.Read(probe)
	if isBinary(probe[:n]) {
		result.FilesSkipped++
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		result.FilesSkipped++
		return
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	result.FilesScanned++
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if matchLine(line, re, needle, caseSensitive) {
			result.Matches = append(result.Matches, SearchMatch{Path: rel, Line: lineNo, Text: line})
			if len(result.Matches) >= maxMatches {
				result.Truncated = true
				return
			}
		}
	}
}

func matchLine(line string, re *regexp.Regexp, needle string, caseSensitive bool) bool {
	if re != nil {
		return re.MatchString(line)
	}
	if caseSensitive {
		return strings.Contains(line, needle)
	}
	return strings.Contains(strings.ToLower(line), needle)
}
