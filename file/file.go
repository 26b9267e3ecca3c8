package file

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smallnest/agenttools/tool"
)

const (
	defaultMaxReadBytes = 10 << 20 // 10 MiB
	binaryProbeSize     = 1024
)

// ReadOptions controls Read.
type ReadOptions struct {
	// StartLine is the first line to return, 1-based. 0 means the start.
	StartLine int
	// MaxLines caps the returned lines. 0 means all.
	MaxLines int
	// MaxBytes refuses files larger than this. 0 means the 10 MiB default.
	MaxBytes int64
}

// ReadResult is the content of a text file.
type ReadResult struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Size      int64  `json:"size"`
	Lines     int    `json:"lines"`
	Binary    bool   `json:"binary"`
	Truncated bool   `json:"truncated,omitempty"`
}

// Read returns the content of a text file, optionally windowed by line.
// Binary files are flagged and returned without content.
func Read(path string, opts ReadOptions) (*ReadResult, error) {
	info, err := statFile(path)
	if err != nil {
		return nil, err
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxReadBytes
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", tool.ErrTooLarge, path, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := &ReadResult{Path: path, Size: info.Size()}
	if isBinary(data) {
		result.Binary = true
		return result, nil
	}

	lines := strings.Split(string(data), "\n")
	result.Lines = len(lines)

	start := opts.StartLine
	if start > 0 {
		if start > len(lines) {
			return nil, tool.Invalidf("start_line", "%d is past the last line %d", start, len(lines))
		}
		lines = lines[start-1:]
		result.Truncated = true
	}
	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		lines = lines[:opts.MaxLines]
		result.Truncated = true
	}
	if result.Truncated {
		result.Content = strings.Join(lines, "\n")
	} else {
		result.Content = string(data)
	}
	return result, nil
}

// isBinary probes the first KiB for NUL bytes.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// WriteOptions controls Write.
type WriteOptions struct {
	// SkipConfirm allows overwriting an existing file. Without it, writing
	// over an existing file fails with tool.ErrConfirmRequired.
	SkipConfirm bool
	// MakeParents creates missing parent directories.
	MakeParents bool
	// Mode is the file mode for new files. 0 means 0644.
	Mode os.FileMode
}

// WriteResult reports what a write changed.
type WriteResult struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytes_written"`
	Overwrote    bool   `json:"overwrote"`
}

// Write stores content at path. The write is atomic: content lands in a
// temporary file in the same directory first and is renamed over the target.
func Write(path, content string, opts WriteOptions) (*WriteResult, error) {
	existed, err := exists(path)
	if err != nil {
		return nil, err
	}
	if existed && !opts.SkipConfirm {
		return nil, fmt.Errorf("%w: %s already exists", tool.ErrConfirmRequired, path)
	}

	dir := filepath.Dir(path)
	if opts.MakeParents {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create parent %s: %w", dir, err)
		}
	}

	mode := opts.Mode
	if mode == 0 {
		mode = 0o644
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, []byte(content), mode); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &WriteResult{Path: path, BytesWritten: len(content), Overwrote: existed}, nil
}

// Append adds content to the end of path, creating the file when absent.
func Append(path, content string) (*WriteResult, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := f.WriteString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return &WriteResult{Path: path, BytesWritten: n}, nil
}

// DeleteOptions controls Delete.
type DeleteOptions struct {
	// SkipConfirm is required for anything to be removed.
	SkipConfirm bool
	// Recursive allows removing a non-empty directory.
	Recursive bool
}

// DeleteResult reports what was removed.
type DeleteResult struct {
	Path   string `json:"path"`
	WasDir bool   `json:"was_dir"`
}

// Delete removes a file or directory.
func Delete(path string, opts DeleteOptions) (*DeleteResult, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !opts.SkipConfirm {
		return nil, fmt.Errorf("%w: deleting %s", tool.ErrConfirmRequired, path)
	}

	if info.IsDir() && opts.Recursive {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return &DeleteResult{Path: path, WasDir: info.IsDir()}, nil
}

// CopyOptions controls Copy and Move.
type CopyOptions struct {
	// SkipConfirm allows replacing an existing destination.
	SkipConfirm bool
	// MakeParents creates missing destination directories.
	MakeParents bool
}

// CopyResult reports a finished copy or move.
type CopyResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	BytesCopied int64  `json:"bytes_copied"`
	Overwrote   bool   `json:"overwrote"`
}

// Copy duplicates a regular file, preserving its mode.
func Copy(src, dst string, opts CopyOptions) (*CopyResult, error) {
	info, err := statFile(src)
	if err != nil {
		return nil, err
	}
	overwrote, err := prepareDestination(dst, opts)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", dst, err)
	}
	return &CopyResult{Source: src, Destination: dst, BytesCopied: n, Overwrote: overwrote}, nil
}

// Move renames a file, falling back to copy and remove when the rename
// crosses devices.
func Move(src, dst string, opts CopyOptions) (*CopyResult, error) {
	info, err := statFile(src)
	if err != nil {
		return nil, err
	}
	overwrote, err := prepareDestination(dst, opts)
	if err != nil {
		return nil, err
	}

	if err := os.Rename(src, dst); err == nil {
		return &CopyResult{Source: src, Destination: dst, BytesCopied: info.Size(), Overwrote: overwrote}, nil
	}

	res, err := Copy(src, dst, CopyOptions{SkipConfirm: true, MakeParents: opts.MakeParents})
	if err != nil {
		return nil, err
	}
	if err := os.Remove(src); err != nil {
		return nil, fmt.Errorf("failed to remove %s after copy: %w", src, err)
	}
	res.Overwrote = overwrote
	return res, nil
}

func prepareDestination(dst string, opts CopyOptions) (existed bool, err error) {
	existed, err = exists(dst)
	if err != nil {
		return false, err
	}
	if existed && !opts.SkipConfirm {
		return false, fmt.Errorf("%w: %s already exists", tool.ErrConfirmRequired, dst)
	}
	if opts.MakeParents {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return false, fmt.Errorf("failed to create parent of %s: %w", dst, err)
		}
	}
	return existed, nil
}

// MkdirResult reports a directory creation.
type MkdirResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Mkdir creates a directory and any missing parents.
func Mkdir(path string) (*MkdirResult, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return &MkdirResult{Path: path, Created: false}, nil
	case err == nil:
		return nil, fmt.Errorf("%w: %s exists and is a file", tool.ErrNotDirectory, path)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &MkdirResult{Path: path, Created: true}, nil
}

// Info describes one file system entry.
type Info struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Mode      string `json:"mode"`
	ModTime   string `json:"mod_time"`
	IsDir     bool   `json:"is_dir"`
	Extension string `json:"extension,omitempty"`
	Symlink   bool   `json:"symlink,omitempty"`
	Target    string `json:"target,omitempty"`
}

// Stat describes path without following symlinks.
func Stat(path string) (*Info, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	out := &Info{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode().String(),
		ModTime: info.ModTime().UTC().Format(time.RFC3339),
		IsDir:   info.IsDir(),
	}
	if !info.IsDir() {
		out.Extension = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if info.Mode()&os.ModeSymlink != 0 {
		out.Symlink = true
		if target, err := os.Readlink(path); err == nil {
			out.Target = target
		}
	}
	return out, nil
}

// ChecksumResult is a file digest.
type ChecksumResult struct {
	Path      string `json:"path"`
	Algorithm string `json:"algorithm"`
	Hex       string `json:"hex"`
	Size      int64  `json:"size"`
}

// Checksum digests a file with md5, sha1 or sha256.
func Checksum(path, algorithm string) (*ChecksumResult, error) {
	var h hash.Hash
	algo := strings.ToLower(algorithm)
	switch algo {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256", "":
		algo = "sha256"
		h = sha256.New()
	default:
		return nil, tool.Invalidf("algorithm", "unknown algorithm %q (md5, sha1, sha256)", algorithm)
	}

	info, err := statFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, bufio.NewReader(f)); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return &ChecksumResult{
		Path:      path,
		Algorithm: algo,
		Hex:       hex.EncodeToString(h.Sum(nil)),
		Size:      info.Size(),
	}, nil
}

// statFile stats path and requires it to be a regular file.
func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected a file", path)
	}
	return info, nil
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
