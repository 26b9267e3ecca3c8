// Package tool defines the core model every agenttools category builds on:
// tool definitions, input schemas, and a registry for lookup and dispatch.
//
// A tool is a named, stateless operation that takes a JSON object as input
// and returns a JSON-serializable result. Category packages such as file,
// text and color expose their operations both as plain Go functions and as
// *Definition values wrapping those functions.
//
// # Definitions
//
// Build a definition with New, attaching a category, tags and an input
// schema:
//
//	import "github.com/smallnest/agenttools/tool"
//
//	def := tool.New("greet", "Greets a person by name.",
//		func(ctx context.Context, args json.RawMessage) (any, error) {
//			var p struct {
//				Name string `json:"name"`
//			}
//			if err := tool.DecodeArgs(args, &p); err != nil {
//				return nil, err
//			}
//			if p.Name == "" {
//				return nil, tool.Invalidf("name", "must not be empty")
//			}
//			return map[string]string{"greeting": "hello " + p.Name}, nil
//		},
//		tool.WithCategory("demo"),
//		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
//			"name": tool.StringProp("Name of the person to greet."),
//		}, "name")),
//	)
//
// # Calling Tools
//
// Definitions satisfy the langchaingo tools.Tool interface, so agents call
// them with a JSON string and get a JSON string back:
//
//	result, err := def.Call(ctx, `{"name": "Ada"}`)
//	// result == `{"greeting":"hello Ada"}`
//
// Go code that already holds decoded arguments can skip the string round
// trip with Execute, or better, call the category package's typed function
// directly.
//
// # Registry
//
// A Registry aggregates definitions for lookup, listing and dispatch:
//
//	reg := tool.NewRegistry(file.Tools()...)
//	reg.MustRegister(color.Tools()...)
//
//	def, ok := reg.Get("directory_tree")
//	names := reg.Names()
//	readers := reg.ByCategory("file")
//	hits := reg.Search("contrast")
//
//	out, err := reg.Execute(ctx, "color_contrast",
//		`{"first": "#000000", "second": "#FFFFFF"}`)
//
// The root agenttools package builds a registry of every category with
// agenttools.NewRegistry().
//
// # Errors
//
// Tools validate their input eagerly and return wrapped sentinel errors:
//
//	if errors.Is(err, tool.ErrInvalidInput) { ... }
//	if errors.Is(err, tool.ErrConfirmRequired) { ... }
//
// ErrConfirmRequired is the guard on destructive operations: tools that
// overwrite or delete refuse to act until the caller passes
// "skip_confirm": true.
//
// # Thread Safety
//
// Definitions are immutable after construction and the registry guards its
// map with a RWMutex, so both can be shared freely across goroutines.
package tool
