// Package adapter holds the framework bridges.
//
// Each subpackage converts tool definitions into the shape one agent
// framework expects: langchain for langchaingo tools.Tool values, openai
// for go-openai function-calling declarations. The core tool package
// stays framework-free; only these bridges import framework types.
package adapter
