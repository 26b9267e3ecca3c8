// Package data provides structured data tools: CSV parsing with delimiter
// sniffing, JSON formatting, path queries and edits, and conversions
// between JSON, YAML, TOML, INI and XML.
//
// All tools are pure text transforms. Nothing touches the file system;
// feed file content through the file package first when needed.
//
// # Delimiter Sniffing
//
// csv_parse sniffs the separator when none is given by scoring comma,
// semicolon, tab and pipe against a sample of the input. A candidate
// scores only when every sampled row splits into the same number of
// fields, and the widest consistent split wins.
//
// # JSON Paths
//
// json_query and json_set use gjson and sjson path syntax:
//
//	res, _ := data.QueryJSON(`{"user": {"name": "Ada"}}`, "user.name")
//	// res.Exists == true, res.Value == "Ada"
//
//	doc, _ := data.SetJSON(`{"a": 1}`, "b.c", json.RawMessage(`2`))
//	// doc == `{"a": 1,"b":{"c":2}}`
//
// A missing query path is reported through Exists rather than as an
// error, so agents can probe documents without retry loops.
package data
