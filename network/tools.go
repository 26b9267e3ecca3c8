package network

import (
	"context"
	"encoding/json"
	"time"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "network"

type lookupParams struct {
	Host string `json:"host"`
	Type string `json:"type"`
}

type portParams struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type urlParams struct {
	URL string `json:"url"`
}

type pingParams struct {
	URL            string `json:"url"`
	Method         string `json:"method"`
	Count          int    `json:"count"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Tools returns the network tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		lookupTool(),
		portTool(),
		urlTool(),
		interfacesTool(),
		pingTool(),
	}
}

func lookupTool() *tool.Definition {
	return tool.New("dns_lookup",
		"Resolves DNS records for a host. A name that does not exist reports found=false rather than an error.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p lookupParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Lookup(ctx, p.Host, p.Type)
		},
		tool.WithCategory(Category),
		tool.WithTags("dns", "resolve", "lookup"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"host": tool.StringProp("Host name to resolve."),
			"type": tool.EnumProp("Record type. Defaults to A.", "A", "AAAA", "CNAME", "MX", "NS", "TXT"),
		}, "host")),
	)
}

func portTool() *tool.Definition {
	return tool.New("port_check",
		"Dials one TCP host:port and reports whether it accepted the connection. One target per call; not a scanner.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p portParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return CheckPort(ctx, p.Host, p.Port, time.Duration(p.TimeoutSeconds)*time.Second)
		},
		tool.WithCategory(Category),
		tool.WithTags("tcp", "port", "connectivity"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"host":            tool.StringProp("Host name or IP address."),
			"port":            tool.IntProp("TCP port, 1-65535."),
			"timeout_seconds": tool.IntProp("Dial timeout. Defaults to 5, capped at 30."),
		}, "host", "port")),
	)
}

func urlTool() *tool.Definition {
	return tool.New("url_parse",
		"Breaks a URL into scheme, host, port, path, query, fragment and user.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p urlParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return ParseURL(p.URL)
		},
		tool.WithCategory(Category),
		tool.WithTags("url", "parse"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url": tool.StringProp("URL to parse."),
		}, "url")),
	)
}

func interfacesTool() *tool.Definition {
	return tool.New("net_interfaces",
		"Lists local network interfaces with their MAC addresses and unicast addresses.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return Interfaces()
		},
		tool.WithCategory(Category),
		tool.WithTags("interfaces", "mac", "addresses"),
		tool.WithSchema(tool.NewSchema(nil)),
	)
}

func pingTool() *tool.Definition {
	return tool.New("http_ping",
		"Issues sequential HTTP requests against a URL and reports min/avg/max/stddev latency in milliseconds.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pingParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Ping(ctx, p.URL, p.Method, p.Count, time.Duration(p.TimeoutSeconds)*time.Second)
		},
		tool.WithCategory(Category),
		tool.WithTags("latency", "benchmark", "http"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"url":             tool.StringProp("Absolute http or https URL."),
			"method":          tool.EnumProp("Request method. Defaults to HEAD.", "HEAD", "GET"),
			"count":           tool.IntProp("Number of requests, 1-20. Defaults to 3."),
			"timeout_seconds": tool.IntProp("Per-request timeout. Defaults to 5."),
		}, "url")),
	)
}
