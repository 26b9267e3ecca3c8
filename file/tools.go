package file

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "file"

// Tools returns the file system tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		readTool(),
		writeTool(),
		appendTool(),
		deleteTool(),
		copyTool(),
		moveTool(),
		mkdirTool(),
		listTool(),
		statTool(),
		searchTool(),
		checksumTool(),
		treeTool(),
	}
}

func readTool() *tool.Definition {
	type params struct {
		Path      string `json:"path"`
		StartLine int    `json:"start_line"`
		MaxLines  int    `json:"max_lines"`
	}
	return tool.New("file_read",
		"Reads a text file, optionally windowed by line. Binary files are flagged instead of returned.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Read(p.Path, ReadOptions{StartLine: p.StartLine, MaxLines: p.MaxLines})
		},
		tool.WithCategory(Category),
		tool.WithTags("read", "fs"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":       tool.StringProp("File to read."),
			"start_line": tool.IntProp("First line to return, 1-based."),
			"max_lines":  tool.IntProp("Maximum lines to return, 0 for all."),
		}, "path")),
	)
}

func writeTool() *tool.Definition {
	type params struct {
		Path        string `json:"path"`
		Content     string `json:"content"`
		SkipConfirm bool   `json:"skip_confirm"`
		MakeParents bool   `json:"make_parents"`
	}
	return tool.New("file_write",
		"Writes content to a file. Refuses to overwrite an existing file unless skip_confirm is true.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Write(p.Path, p.Content, WriteOptions{
				SkipConfirm: p.SkipConfirm,
				MakeParents: p.MakeParents,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("write", "fs"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":         tool.StringProp("File to write."),
			"content":      tool.StringProp("Content to store."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing file."),
			"make_parents": tool.BoolProp("Create missing parent directories."),
		}, "path", "content")),
	)
}

func appendTool() *tool.Definition {
	type params struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	return tool.New("file_append",
		"Appends content to a file, creating it when absent.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Append(p.Path, p.Content)
		},
		tool.WithCategory(Category),
		tool.WithTags("append", "write", "fs"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":    tool.StringProp("File to append to."),
			"content": tool.StringProp("Content to add."),
		}, "path", "content")),
	)
}

func deleteTool() *tool.Definition {
	type params struct {
		Path        string `json:"path"`
		SkipConfirm bool   `json:"skip_confirm"`
		Recursive   bool   `json:"recursive"`
	}
	return tool.New("file_delete",
		"Deletes a file or directory. Requires skip_confirm; directories additionally need recursive.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Delete(p.Path, DeleteOptions{SkipConfirm: p.SkipConfirm, Recursive: p.Recursive})
		},
		tool.WithCategory(Category),
		tool.WithTags("delete", "remove", "fs"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":         tool.StringProp("File or directory to delete."),
			"skip_confirm": tool.BoolProp("Confirm the deletion."),
			"recursive":    tool.BoolProp("Allow removing a non-empty directory."),
		}, "path")),
	)
}

func copyTool() *tool.Definition {
	type params struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
		SkipConfirm bool   `json:"skip_confirm"`
		MakeParents bool   `json:"make_parents"`
	}
	return tool.New("file_copy",
		"Copies a file. Refuses to replace an existing destination unless skip_confirm is true.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Copy(p.Source, p.Destination, CopyOptions{
				SkipConfirm: p.SkipConfirm,
				MakeParents: p.MakeParents,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("copy", "fs"),
		tool.WithWrites(),
		tool.WithSchema(copyMoveSchema("copy")),
	)
}

func moveTool() *tool.Definition {
	type params struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
		SkipConfirm bool   `json:"skip_confirm"`
		MakeParents bool   `json:"make_parents"`
	}
	return tool.New("file_move",
		"Moves or renames a file. Refuses to replace an existing destination unless skip_confirm is true.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Move(p.Source, p.Destination, CopyOptions{
				SkipConfirm: p.SkipConfirm,
				MakeParents: p.MakeParents,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("move", "rename", "fs"),
		tool.WithWrites(),
		tool.WithSchema(copyMoveSchema("move")),
	)
}

func copyMoveSchema(verb string) *tool.Schema {
	return tool.NewSchema(map[string]*tool.Property{
		"source":       tool.StringProp("File to " + verb + "."),
		"destination":  tool.StringProp("Target path."),
		"skip_confirm": tool.BoolProp("Allow replacing an existing destination."),
		"make_parents": tool.BoolProp("Create missing destination directories."),
	}, "source", "destination")
}

func mkdirTool() *tool.Definition {
	type params struct {
		Path string `json:"path"`
	}
	return tool.New("file_mkdir",
		"Creates a directory and any missing parents.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Mkdir(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("mkdir", "fs"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Directory to create."),
		}, "path")),
	)
}

func listTool() *tool.Definition {
	type params struct {
		Path       string `json:"path"`
		Recursive  bool   `json:"recursive"`
		Pattern    string `json:"pattern"`
		ShowHidden bool   `json:"show_hidden"`
		DirsOnly   bool   `json:"dirs_only"`
		FilesOnly  bool   `json:"files_only"`
		MaxResults int    `json:"max_results"`
	}
	return tool.New("file_list",
		"Lists directory entries, optionally recursively, filtered by a name glob.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return List(ctx, p.Path, ListOptions{
				Recursive:  p.Recursive,
				Pattern:    p.Pattern,
				ShowHidden: p.ShowHidden,
				DirsOnly:   p.DirsOnly,
				FilesOnly:  p.FilesOnly,
				MaxResults: p.MaxResults,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("list", "ls", "fs"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":        tool.StringProp("Directory to list."),
			"recursive":   tool.BoolProp("Descend into subdirectories."),
			"pattern":     tool.StringProp(`Name glob like "*.go".`),
			"show_hidden": tool.BoolProp("Include dot-prefixed entries."),
			"dirs_only":   tool.BoolProp("Only directories."),
			"files_only":  tool.BoolProp("Only files."),
			"max_results": tool.IntProp("Result cap. Defaults to 1000."),
		}, "path")),
	)
}

func statTool() *tool.Definition {
	type params struct {
		Path string `json:"path"`
	}
	return tool.New("file_stat",
		"Describes a file or directory: size, mode, modification time, symlink target.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Stat(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("stat", "info", "fs"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path to describe."),
		}, "path")),
	)
}

func searchTool() *tool.Definition {
	type params struct {
		Path          string `json:"path"`
		Query         string `json:"query"`
		Regex         bool   `json:"regex"`
		CaseSensitive bool   `json:"case_sensitive"`
		Pattern       string `json:"pattern"`
		MaxMatches    int    `json:"max_matches"`
	}
	return tool.New("file_search",
		"Searches text files under a directory for a substring or regular expression, returning matching lines.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Search(ctx, p.Path, SearchOptions{
				Query:         p.Query,
				Regex:         p.Regex,
				CaseSensitive: p.CaseSensitive,
				Pattern:       p.Pattern,
				MaxMatches:    p.MaxMatches,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("search", "grep", "fs"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":           tool.StringProp("Directory to search."),
			"query":          tool.StringProp("Substring or regular expression to find."),
			"regex":          tool.BoolProp("Treat the query as a Go regular expression."),
			"case_sensitive": tool.BoolProp("Match case exactly."),
			"pattern":        tool.StringProp(`Only search files matching this name glob.`),
			"max_matches":    tool.IntProp("Match cap. Defaults to 200."),
		}, "path", "query")),
	)
}

func checksumTool() *tool.Definition {
	type params struct {
		Path      string `json:"path"`
		Algorithm string `json:"algorithm"`
	}
	return tool.New("file_checksum",
		"Computes the md5, sha1 or sha256 digest of a file.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Checksum(p.Path, p.Algorithm)
		},
		tool.WithCategory(Category),
		tool.WithTags("checksum", "hash", "digest"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":      tool.StringProp("File to digest."),
			"algorithm": tool.EnumProp("Digest algorithm. Defaults to sha256.", "md5", "sha1", "sha256"),
		}, "path")),
	)
}

func treeTool() *tool.Definition {
	type params struct {
		Path       string `json:"path"`
		MaxDepth   *int   `json:"max_depth"`
		DirsOnly   bool   `json:"dirs_only"`
		DirsFirst  bool   `json:"dirs_first"`
		ShowHidden bool   `json:"show_hidden"`
		MaxEntries int    `json:"max_entries"`
	}
	return tool.New("directory_tree",
		"Renders a directory as an ASCII tree with box-drawing connectors. "+
			"max_depth 0 lists only the immediate entries; omit it for the full tree.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			depth := -1
			if p.MaxDepth != nil {
				depth = *p.MaxDepth
			}
			return Tree(ctx, p.Path, TreeOptions{
				MaxDepth:   depth,
				DirsOnly:   p.DirsOnly,
				DirsFirst:  p.DirsFirst,
				ShowHidden: p.ShowHidden,
				MaxEntries: p.MaxEntries,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("tree", "directory", "fs"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":        tool.StringProp("Directory to render."),
			"max_depth":   tool.IntProp("Levels below the immediate entries: 0 never descends, negative or omitted means unlimited."),
			"dirs_only":   tool.BoolProp("Leave files out."),
			"dirs_first":  tool.BoolProp("Group directories before files instead of interleaving by name."),
			"show_hidden": tool.BoolProp("Include dot-prefixed entries."),
			"max_entries": tool.IntProp("Entry cap. Defaults to 10000."),
		}, "path")),
	)
}
