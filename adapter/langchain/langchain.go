// Package langchain exposes tool definitions to langchaingo agents.
//
// A *tool.Definition already satisfies the langchaingo tools.Tool
// interface; this package pins that with a compile-time assertion and
// adds slice conversion helpers, so agent wiring stays one line:
//
//	agent := agents.NewOneShotAgent(llm, langchain.WrapAll(agenttools.All()))
package langchain

import (
	"github.com/tmc/langchaingo/tools"

	"github.com/smallnest/agenttools/tool"
)

var _ tools.Tool = (*tool.Definition)(nil)

// Wrap returns a definition as a langchaingo tool.
func Wrap(def *tool.Definition) tools.Tool {
	return def
}

// WrapAll returns a slice of definitions as langchaingo tools.
func WrapAll(defs []*tool.Definition) []tools.Tool {
	wrapped := make([]tools.Tool, len(defs))
	for i, def := range defs {
		wrapped[i] = def
	}
	return wrapped
}
