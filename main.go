package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jaathavan18/jot/internal/config"
	"github.com/jaathavan18/jot/internal/diff"
	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/format"
	"github.com/jaathavan18/jot/internal/merge"
	"github.com/jaathavan18/jot/internal/parser"
	"github.com/jaathavan18/jot/internal/pathexpr"
	"github.com/jaathavan18/jot/internal/schema"
	"github.com/jaathavan18/jot/internal/server"
)

// Version information
const (
	Version = "0.1.0"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to config file. Defaults to the nearest .jot.yaml." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Fmt      FmtCmd      `cmd:"" help:"Pretty print or minify a JSON document."`
	Get      GetCmd      `cmd:"" help:"Extract a value using a dot-notation path."`
	Merge    MergeCmd    `cmd:"" help:"Deep merge two JSON documents."`
	Diff     DiffCmd     `cmd:"" help:"Compare two JSON documents."`
	Validate ValidateCmd `cmd:"" help:"Validate a JSON document against a JSON Schema."`
	Serve    ServeCmd    `cmd:"" help:"Serve the operations over HTTP."`
}

// Context holds the runtime context shared by commands
type Context struct {
	Config *config.Config
}

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("jot"),
		kong.Description("A tool for structural operations on JSON: extract, merge, diff, format, validate."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jot version %s", Version)},
	)

	ctx, err := kongParser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := ctx.Run(&Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jot --help\n")
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

// FmtCmd renders a document with the requested layout.
type FmtCmd struct {
	Input    string `arg:"" optional:"" help:"Path to input JSON file. Reads stdin when omitted." type:"path"`
	Indent   int    `help:"Spaces per indentation level, 0 to minify (0-8)." short:"n" default:"-1"`
	SortKeys bool   `help:"Sort object keys alphabetically." short:"s"`
	Output   string `help:"Path to output file. Writes to stdout when omitted." short:"o" type:"path"`
}

// Run executes the fmt command.
func (c *FmtCmd) Run(ctx *Context) error {
	doc, err := parser.ReadInput(c.Input, os.Stdin)
	if err != nil {
		return err
	}
	indent, err := resolveIndent(c.Indent, ctx.Config)
	if err != nil {
		return err
	}
	text := format.Render(doc, format.Options{
		Indent:   indent,
		SortKeys: c.SortKeys || ctx.Config.Format.SortKeys,
	})
	return writeOutput(c.Output, text)
}

// GetCmd resolves a path expression against a document.
type GetCmd struct {
	Expression string `arg:"" help:"Dot-notation path, such as users[0].name or config.db.host."`
	Input      string `arg:"" optional:"" help:"Path to input JSON file. Reads stdin when omitted." type:"path"`
	Indent     int    `help:"Spaces per indentation level, 0 to minify (0-8)." short:"n" default:"-1"`
	Output     string `help:"Path to output file. Writes to stdout when omitted." short:"o" type:"path"`
}

// Run executes the get command.
func (c *GetCmd) Run(ctx *Context) error {
	doc, err := parser.ReadInput(c.Input, os.Stdin)
	if err != nil {
		return err
	}
	result, err := pathexpr.Resolve(doc, c.Expression)
	if err != nil {
		return errors.NewPathError(err.Error(), err)
	}
	indent, err := resolveIndent(c.Indent, ctx.Config)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, format.Format(result, indent))
}

// MergeCmd deep merges two documents.
type MergeCmd struct {
	Base     string `arg:"" help:"Path to the base JSON file." type:"path"`
	Override string `arg:"" help:"Path to the override JSON file. Its values win on conflicts." type:"path"`
	Indent   int    `help:"Spaces per indentation level, 0 to minify (0-8)." short:"n" default:"-1"`
	Output   string `help:"Path to output file. Writes to stdout when omitted." short:"o" type:"path"`
}

// Run executes the merge command.
func (c *MergeCmd) Run(ctx *Context) error {
	base, err := parser.ParseFile(c.Base)
	if err != nil {
		return err
	}
	override, err := parser.ParseFile(c.Override)
	if err != nil {
		return err
	}
	indent, err := resolveIndent(c.Indent, ctx.Config)
	if err != nil {
		return err
	}
	merged := merge.Merge(base, override)
	return writeOutput(c.Output, format.Format(merged, indent))
}

// DiffCmd compares two documents and prints the change list.
type DiffCmd struct {
	First  string `arg:"" help:"Path to the first JSON file." type:"path"`
	Second string `arg:"" help:"Path to the second JSON file." type:"path"`
	Output string `help:"Path to output file. Writes to stdout when omitted." short:"o" type:"path"`
}

// Run executes the diff command.
func (c *DiffCmd) Run(ctx *Context) error {
	first, err := parser.ParseFile(c.First)
	if err != nil {
		return err
	}
	second, err := parser.ParseFile(c.Second)
	if err != nil {
		return err
	}
	changes := diff.Diff(first, second)
	if changes == nil {
		changes = []diff.Change{}
	}
	report := struct {
		Equal           bool          `json:"equal"`
		Differences     []diff.Change `json:"differences"`
		DifferenceCount int           `json:"difference_count"`
	}{
		Equal:           len(changes) == 0,
		Differences:     changes,
		DifferenceCount: len(changes),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.NewOutputError("failed to encode diff report", err)
	}
	return writeOutput(c.Output, string(data))
}

// ValidateCmd validates a document against a JSON Schema.
type ValidateCmd struct {
	Schema string `arg:"" help:"Path to the JSON Schema file." type:"path"`
	Input  string `arg:"" optional:"" help:"Path to input JSON file. Reads stdin when omitted." type:"path"`
	Output string `help:"Path to output file. Writes to stdout when omitted." short:"o" type:"path"`
}

// Run executes the validate command.
func (c *ValidateCmd) Run(ctx *Context) error {
	sch, err := parser.ParseFile(c.Schema)
	if err != nil {
		return err
	}
	doc, err := parser.ReadInput(c.Input, os.Stdin)
	if err != nil {
		return err
	}
	result, err := schema.Validate(doc, sch)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.NewOutputError("failed to encode validation report", err)
	}
	if err := writeOutput(c.Output, string(data)); err != nil {
		return err
	}
	if !result.Valid {
		return errors.NewSchemaError(fmt.Sprintf("document has %d validation error(s)", result.ErrorCount), nil)
	}
	return nil
}

// ServeCmd runs the HTTP service.
type ServeCmd struct {
	Addr string `help:"Listen address, overrides the configured one." default:""`
}

// Run executes the serve command.
func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Addr != "" {
		cfg.Server.ListenAddr = c.Addr
	}
	return server.New(cfg).ListenAndServe()
}

// resolveIndent picks the effective indentation: a negative flag value
// falls back to the configured default.
func resolveIndent(flag int, cfg *config.Config) (int, error) {
	indent := flag
	if indent < 0 {
		indent = cfg.Format.Indent
	}
	if indent > 8 {
		return 0, errors.NewInputError("indent must be between 0 and 8", nil)
	}
	return indent, nil
}

// writeOutput writes text to a file or stdout
func writeOutput(path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		return nil
	}
	if _, err := fmt.Println(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
