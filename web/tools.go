package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "web"

type fetchParams struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxBytes       int    `json:"max_bytes"`
}

type requestParams struct {
	URL            string            `json:"url"`
	Method         string            `json:"method"`
	Headers        map[string]string `json:"headers"`
	Body           string            `json:"body"`
	TimeoutSeconds int               `json:"timeout_seconds"`
}

type linksParams struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxLinks       int    `json:"max_links"`
}

type metadataParams struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Tools returns the web tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		fetchTool(),
		requestTool(),
		linksTool(),
		metadataTool(),
	}
}

func fetchTool() *tool.Definition {
	return tool.New("web_fetch",
		"Fetches a URL and returns its content as plain text. HTML is stripped of markup.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p fetchParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Fetch(ctx, p.URL, seconds(p.TimeoutSeconds), p.MaxBytes)
		},
		tool.WithCategory(Category),
		tool.WithTags("fetch", "get", "html", "text"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url":             tool.StringProp("Absolute http or https URL."),
			"timeout_seconds": tool.IntProp("Request timeout. Defaults to 30, capped at 300."),
			"max_bytes":       tool.IntProp("Body read cap in bytes. Defaults to 2 MiB."),
		}, "url")),
	)
}

func requestTool() *tool.Definition {
	return tool.New("http_request",
		"Performs one HTTP request and returns status, headers, body and elapsed milliseconds. No retries.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p requestParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Request(ctx, p.URL, RequestOptions{
				Method:  p.Method,
				Headers: p.Headers,
				Body:    p.Body,
				Timeout: seconds(p.TimeoutSeconds),
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("http", "request", "api"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url":             tool.StringProp("Absolute http or https URL."),
			"method":          tool.EnumProp("HTTP method. Defaults to GET.", "GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"),
			"headers":         tool.ObjectProp("Request headers as a flat string map.", nil),
			"body":            tool.StringProp("Request body."),
			"timeout_seconds": tool.IntProp("Request timeout. Defaults to 30, capped at 300."),
		}, "url")),
	)
}

func linksTool() *tool.Definition {
	return tool.New("web_links",
		"Extracts the anchors of a page as absolute URLs, deduplicated and in document order.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p linksParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Links(ctx, p.URL, seconds(p.TimeoutSeconds), p.MaxLinks)
		},
		tool.WithCategory(Category),
		tool.WithTags("links", "anchors", "scrape"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url":             tool.StringProp("Absolute http or https URL."),
			"timeout_seconds": tool.IntProp("Request timeout. Defaults to 30, capped at 300."),
			"max_links":       tool.IntProp("Cap on returned links. Defaults to 200."),
		}, "url")),
	)
}

func metadataTool() *tool.Definition {
	return tool.New("web_metadata",
		"Extracts title, meta description, canonical URL and open-graph properties from a page.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p metadataParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Metadata(ctx, p.URL, seconds(p.TimeoutSeconds))
		},
		tool.WithCategory(Category),
		tool.WithTags("metadata", "title", "opengraph", "scrape"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url":             tool.StringProp("Absolute http or https URL."),
			"timeout_seconds": tool.IntProp("Request timeout. Defaults to 30, capped at 300."),
		}, "url")),
	)
}
