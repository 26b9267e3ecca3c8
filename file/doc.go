// Package file provides file system tools: reading, writing, copying,
// listing, searching and rendering directory trees.
//
// All operations are stateless. Each call receives explicit paths and
// options and touches the file system once; nothing is cached between
// calls.
//
// # Destructive Operations
//
// Write, Delete, Copy and Move refuse to destroy existing data by
// default. Overwriting a file, replacing a destination or deleting
// anything returns tool.ErrConfirmRequired until the caller sets
// skip_confirm:
//
//	_, err := file.Write("notes.txt", "v2", file.WriteOptions{})
//	// err wraps tool.ErrConfirmRequired when notes.txt exists
//
//	res, err := file.Write("notes.txt", "v2", file.WriteOptions{SkipConfirm: true})
//
// Writes go through a temporary file in the destination directory and
// are renamed into place, so a crash mid-write never leaves a partial
// file at the destination.
//
// # Directory Trees
//
// Tree renders a directory the way the tree(1) command does, with
// box-drawing connectors:
//
//	out, err := file.Tree(ctx, "project", file.TreeOptions{MaxDepth: 1, DirsFirst: true})
//	fmt.Println(out.Rendered)
//
//	// project/
//	// ├── cmd/
//	// │   └── main.go
//	// ├── go.mod
//	// └── go.sum
//
// MaxDepth 0 lists only the root's immediate entries and never
// descends; a negative MaxDepth removes the limit. Symlinks are shown
// with their target but never followed, and unreadable directories are
// annotated inline instead of failing the whole render.
//
// # Tools
//
// Tools returns the JSON-argument definitions for registry use:
//
//	reg := tool.NewRegistry(file.Tools()...)
//	out, err := reg.Execute(ctx, "directory_tree", `{"path": "project", "max_depth": 0}`)
package file
