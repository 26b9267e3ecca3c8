// Package openai converts tool definitions into go-openai function
// declarations for the chat completions tools API.
//
// Only the declaration side lives here: the caller sends the returned
// tools with a chat request, and when the model answers with a tool call
// it executes the matching definition itself (see Execute for the JSON
// glue). Keeping execution in the caller's loop leaves this package free
// of any OpenAI client state.
package openai

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/smallnest/agenttools/tool"
)

// FunctionDefinition converts one tool into an OpenAI function
// declaration.
func FunctionDefinition(def *tool.Definition) goopenai.FunctionDefinition {
	return goopenai.FunctionDefinition{
		Name:        def.Name(),
		Description: def.Description(),
		Parameters:  def.Schema().Map(),
	}
}

// Tools converts definitions into the tool declarations a chat request
// carries.
func Tools(defs []*tool.Definition) []goopenai.Tool {
	out := make([]goopenai.Tool, len(defs))
	for i, def := range defs {
		fn := FunctionDefinition(def)
		out[i] = goopenai.Tool{
			Type:     goopenai.ToolTypeFunction,
			Function: &fn,
		}
	}
	return out
}

// Execute runs the registry tool named by a model tool call and returns
// the JSON string to send back as the tool message content.
func Execute(ctx context.Context, registry *tool.Registry, call goopenai.ToolCall) (string, error) {
	return registry.Execute(ctx, call.Function.Name, call.Function.Arguments)
}
