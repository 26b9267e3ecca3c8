// Command agenttools lists, describes and runs the library's tools from
// the terminal. It is a debugging surface for tool authors and a quick
// way to try a tool before wiring it into an agent, not an orchestrator.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/smallnest/agenttools"
	"github.com/smallnest/agenttools/tool"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agenttools",
		Short:         "Browse and run agent tools",
		Long:          "agenttools lists, describes and runs the stateless utility tools this library exposes to LLM agents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newDescribeCmd(), newRunCmd())
	return root
}

func newListCmd() *cobra.Command {
	var (
		category string
		tag      string
		search   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := agenttools.NewRegistry()

			var defs []*tool.Definition
			switch {
			case category != "":
				defs = registry.ByCategory(category)
			case tag != "":
				defs = registry.ByTag(tag)
			case search != "":
				defs = registry.Search(search)
			default:
				defs = registry.List()
			}
			if len(defs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no tools matched"))
				return nil
			}

			byCategory := make(map[string][]*tool.Definition)
			for _, def := range defs {
				byCategory[def.Category()] = append(byCategory[def.Category()], def)
			}
			categories := make([]string, 0, len(byCategory))
			for c := range byCategory {
				categories = append(categories, c)
			}
			sort.Strings(categories)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d tools", len(defs))))
			for _, c := range categories {
				fmt.Fprintln(out)
				fmt.Fprintln(out, categoryStyle.Render(c))
				for _, def := range byCategory[c] {
					marker := " "
					if !def.ReadOnly() {
						marker = dimStyle.Render("*")
					}
					fmt.Fprintf(out, "  %s %-24s %s\n", marker, nameStyle.Render(def.Name()), def.Description())
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, dimStyle.Render("* can modify files or external state"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only tools in this category")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only tools carrying this tag")
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring search over names, descriptions and tags")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <tool>",
		Short: "Show a tool's description and input schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := agenttools.NewRegistry()
			def, ok := registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q (try: agenttools list)", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(def.Name()))
			fmt.Fprintln(out, def.Description())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s %s\n", dimStyle.Render("category:"), def.Category())
			if tags := def.Tags(); len(tags) > 0 {
				fmt.Fprintf(out, "%s %s\n", dimStyle.Render("tags:    "), strings.Join(tags, ", "))
			}
			fmt.Fprintf(out, "%s %v\n", dimStyle.Render("readonly:"), def.ReadOnly())

			schema, err := json.MarshalIndent(def.Schema().Map(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, dimStyle.Render("input schema:"))
			fmt.Fprintln(out, string(schema))
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		rawArgs string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run <tool>",
		Short: "Run a tool with JSON arguments and print the JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := agenttools.NewRegistry()

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			result, err := registry.Execute(ctx, args[0], rawArgs)
			if err != nil {
				return err
			}

			// Re-indent so terminal output is readable; the raw string is
			// already valid JSON.
			var v any
			if err := json.Unmarshal([]byte(result), &v); err == nil {
				if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
					result = string(pretty)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rawArgs, "args", "a", "{}", "tool arguments as a JSON object")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the tool after this duration (e.g. 30s)")
	return cmd
}
