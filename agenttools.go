package agenttools

import (
	"sort"

	"github.com/smallnest/agenttools/color"
	"github.com/smallnest/agenttools/data"
	"github.com/smallnest/agenttools/db"
	"github.com/smallnest/agenttools/diagram"
	"github.com/smallnest/agenttools/document"
	"github.com/smallnest/agenttools/file"
	"github.com/smallnest/agenttools/image"
	"github.com/smallnest/agenttools/network"
	"github.com/smallnest/agenttools/sheet"
	"github.com/smallnest/agenttools/system"
	"github.com/smallnest/agenttools/text"
	"github.com/smallnest/agenttools/tool"
	"github.com/smallnest/agenttools/web"
)

// All returns every tool definition in the library, category by category.
func All() []*tool.Definition {
	var defs []*tool.Definition
	defs = append(defs, file.Tools()...)
	defs = append(defs, text.Tools()...)
	defs = append(defs, color.Tools()...)
	defs = append(defs, data.Tools()...)
	defs = append(defs, db.Tools()...)
	defs = append(defs, sheet.Tools()...)
	defs = append(defs, document.Tools()...)
	defs = append(defs, image.Tools()...)
	defs = append(defs, web.Tools()...)
	defs = append(defs, network.Tools()...)
	defs = append(defs, system.Tools()...)
	defs = append(defs, diagram.Tools()...)
	return defs
}

// NewRegistry returns a registry pre-loaded with every tool in the
// library.
func NewRegistry() *tool.Registry {
	return tool.NewRegistry(All()...)
}

// Categories returns the sorted category names of the library.
func Categories() []string {
	seen := make(map[string]bool)
	for _, def := range All() {
		if c := def.Category(); c != "" {
			seen[c] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
