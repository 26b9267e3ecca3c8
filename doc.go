// Package agenttools is a collection of independent, stateless utility
// tools meant to be exposed to LLM agents: file system, text, color,
// structured data, databases, spreadsheets, documents, images, web,
// network, system monitoring and diagram generation.
//
// Each category lives in its own package and can be imported alone; this
// root package only aggregates. Every tool is a plain Go function wrapped
// in a *tool.Definition that takes JSON arguments and returns a
// JSON-serializable result, so the same definition plugs into langchaingo
// agents (it satisfies tools.Tool), OpenAI function calling (see
// adapter/openai) or any custom loop via Call.
//
// # Quick Start
//
//	registry := agenttools.NewRegistry()
//	out, err := registry.Execute(ctx, "directory_tree", `{"path": "."}`)
//
// Or hand a whole category to a langchaingo agent:
//
//	agent := agents.NewOneShotAgent(llm, langchain.WrapAll(file.Tools()))
//
// Tools hold no shared mutable state: concurrent callers do not
// interfere, which is a property of statelessness rather than of any
// locking beyond the registry's RWMutex.
//
// Destructive operations (overwriting or deleting files, replacing
// workbooks or images) refuse to proceed until the caller passes
// skip_confirm, and database queries are read-only unless allow_write is
// set. Agents get a safety interlock; scripts that know what they are
// doing set the flag.
package agenttools
