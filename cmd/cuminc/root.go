package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cympfh/cumin/internal/serialize"
	"github.com/cympfh/cumin/libs/eval"
	cuminjson "github.com/cympfh/cumin/libs/json"
	"github.com/cympfh/cumin/libs/parser"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

var format string

// rootCmd is cuminc's single command: read a Cumin script, evaluate
// it, and print the result. There is no subcommand tree, since spec
// §6 describes one operation, not a family of them.
var rootCmd = &cobra.Command{
	Use:   "cuminc [path]",
	Short: "Compile and evaluate a Cumin configuration script",
	Long: `cuminc parses and evaluates a Cumin configuration script and prints
its final value as JSON or YAML.

Pass "-" (or omit the path) to read the script from stdin.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

func init() {
	rootCmd.Flags().StringVarP(&format, "format", "T", "json", "output format: json or yaml")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitSuccess
}

func runCompile(_ *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	prog, baseDir, err := parseSource(path)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	result, err := eval.Evaluate(prog, baseDir)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	node, err := cuminjson.ToNode(result.Value)
	if err != nil {
		return fmt.Errorf("projection error: %w", err)
	}

	out, err := serialize.Encode(node, serialize.OutputFormat(format))
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// parseSource parses the script at path (or stdin for "-"), returning
// the directory `use` statements in it should resolve relative to. A
// script read from stdin has no directory of its own, so its `use`
// paths must be absolute or resolve from the process's working
// directory (baseDir == "").
func parseSource(path string) (*ast.Program, string, error) {
	if path == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", err
		}
		prog, err := parser.ParseString(string(src), "<stdin>")
		if err != nil {
			return nil, "", err
		}
		return prog, "", nil
	}
	prog, err := parser.ParseFile(path)
	if err != nil {
		return nil, "", err
	}
	return prog, filepath.Dir(path), nil
}
