package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallnest/agenttools/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// treeFixture builds:
//
//	project/
//	├── a/
//	│   ├── c.txt
//	│   └── d/
//	│       └── e.txt
//	├── b.txt
//	└── z.txt
func treeFixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "d"), 0o755))
	writeFixture(t, filepath.Join(root, "b.txt"))
	writeFixture(t, filepath.Join(root, "z.txt"))
	writeFixture(t, filepath.Join(root, "a", "c.txt"))
	writeFixture(t, filepath.Join(root, "a", "d", "e.txt"))
	return root
}

func TestTreeRendersFullDepth(t *testing.T) {
	root := treeFixture(t)

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: -1})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"project/",
		"├── a/",
		"│   ├── c.txt",
		"│   └── d/",
		"│       └── e.txt",
		"├── b.txt",
		"└── z.txt",
	}, "\n") + "\n"
	assert.Equal(t, expected, res.Rendered)
	assert.Equal(t, 2, res.Directories)
	assert.Equal(t, 4, res.Files)
	assert.False(t, res.Truncated)
}

func TestTreeDepthZeroNeverDescends(t *testing.T) {
	root := treeFixture(t)

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 0})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"project/",
		"├── a/",
		"├── b.txt",
		"└── z.txt",
	}, "\n") + "\n"
	assert.Equal(t, expected, res.Rendered)
	assert.NotContains(t, res.Rendered, "c.txt")
	assert.NotContains(t, res.Rendered, "e.txt")
}

func TestTreeDepthOne(t *testing.T) {
	root := treeFixture(t)

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 1})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"project/",
		"├── a/",
		"│   ├── c.txt",
		"│   └── d/",
		"├── b.txt",
		"└── z.txt",
	}, "\n") + "\n"
	assert.Equal(t, expected, res.Rendered)
	assert.NotContains(t, res.Rendered, "e.txt")
}

func TestTreeRootMissing(t *testing.T) {
	_, err := Tree(context.Background(), filepath.Join(t.TempDir(), "missing"), TreeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrNotFound)
}

func TestTreeRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	writeFixture(t, path)

	_, err := Tree(context.Background(), path, TreeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrNotDirectory)
}

func TestTreeDirsFirst(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "aa"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "zz"), 0o755))
	writeFixture(t, filepath.Join(root, "mm.txt"))

	interleaved, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 0})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"project/",
		"├── aa/",
		"├── mm.txt",
		"└── zz/",
	}, "\n")+"\n", interleaved.Rendered)

	grouped, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 0, DirsFirst: true})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"project/",
		"├── aa/",
		"├── zz/",
		"└── mm.txt",
	}, "\n")+"\n", grouped.Rendered)
}

func TestTreeHiddenEntries(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writeFixture(t, filepath.Join(root, "seen.txt"))
	writeFixture(t, filepath.Join(root, ".secret"))

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 0})
	require.NoError(t, err)
	assert.NotContains(t, res.Rendered, ".secret")

	res, err = Tree(context.Background(), root, TreeOptions{MaxDepth: 0, ShowHidden: true})
	require.NoError(t, err)
	assert.Contains(t, res.Rendered, ".secret")
}

func TestTreeDirsOnly(t *testing.T) {
	root := treeFixture(t)

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: -1, DirsOnly: true})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"project/",
		"└── a/",
		"    └── d/",
	}, "\n") + "\n"
	assert.Equal(t, expected, res.Rendered)
	assert.Equal(t, 0, res.Files)
}

func TestTreeSymlinkNotFollowed(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o755))
	writeFixture(t, filepath.Join(root, "real", "inner.txt"))
	require.NoError(t, os.Symlink("real", filepath.Join(root, "sym")))

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: -1})
	require.NoError(t, err)

	assert.Contains(t, res.Rendered, "└── sym -> real")
	assert.Equal(t, 1, strings.Count(res.Rendered, "inner.txt"))
}

func TestTreePermissionDenied(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permissions are not enforced")
	}
	root := filepath.Join(t.TempDir(), "project")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	writeFixture(t, filepath.Join(locked, "inside.txt"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: -1})
	require.NoError(t, err)
	assert.Contains(t, res.Rendered, "└── [permission denied]")
	assert.NotContains(t, res.Rendered, "inside.txt")
}

func TestTreeMaxEntries(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(root, 0o755))
	for _, name := range []string{"f1", "f2", "f3", "f4"} {
		writeFixture(t, filepath.Join(root, name))
	}

	res, err := Tree(context.Background(), root, TreeOptions{MaxDepth: 0, MaxEntries: 2})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Contains(t, res.Rendered, "f2")
	assert.NotContains(t, res.Rendered, "f3")
}

func TestTreeCanceledContext(t *testing.T) {
	root := treeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Tree(ctx, root, TreeOptions{MaxDepth: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTreeToolDefaultsToUnlimitedDepth(t *testing.T) {
	root := treeFixture(t)
	reg := tool.NewRegistry(Tools()...)

	out, err := reg.Execute(context.Background(), "directory_tree", `{"path": `+jsonString(root)+`}`)
	require.NoError(t, err)
	assert.Contains(t, out, "e.txt")

	out, err = reg.Execute(context.Background(), "directory_tree", `{"path": `+jsonString(root)+`, "max_depth": 0}`)
	require.NoError(t, err)
	assert.NotContains(t, out, "c.txt")
}
