package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
	"github.com/Legendyboi/rutaceae/internal/parser"

	"github.com/Legendyboi/rutaceae/internal/driver"
)

var (
	inspectAST   bool
	inspectIR    bool
	inspectQuery string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.rut]",
	Short: "Dump the parsed AST or emitted LLVM IR of a Rutaceae file",
	Long: `inspect is a developer-facing dump command with no effect on
compiled output.

  --ast          marshal the parsed AST to JSON and pretty-print it
  --ir           emit the lowered LLVM IR text
  --query <path> run a gjson path against the --ast JSON and print the
                 single matching field instead of the whole document

Examples:
  rutaceae inspect hello.rut --ast
  rutaceae inspect hello.rut --ast --query "Functions.0.Name"
  rutaceae inspect hello.rut --ir`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectAST, "ast", false, "dump the parsed AST as JSON")
	inspectCmd.Flags().BoolVar(&inspectIR, "ir", false, "dump the emitted LLVM IR")
	inspectCmd.Flags().StringVar(&inspectQuery, "query", "", "gjson path to extract from the --ast JSON")
}

func runInspect(_ *cobra.Command, args []string) error {
	filename := args[0]

	if !inspectAST && !inspectIR {
		inspectAST = true
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if inspectAST {
		l := lexer.New(source)
		p := parser.New(l)
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			errors.AttachSource(errs, source, filename)
			fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
			return fmt.Errorf("parsing failed with %d error(s)", len(errs))
		}

		doc, err := json.Marshal(program)
		if err != nil {
			return fmt.Errorf("failed to marshal AST: %w", err)
		}

		if inspectQuery != "" {
			result := gjson.GetBytes(doc, inspectQuery)
			if !result.Exists() {
				return fmt.Errorf("query %q matched nothing", inspectQuery)
			}
			fmt.Println(result.String())
		} else {
			fmt.Println(string(pretty.Pretty(doc)))
		}
	}

	if inspectIR {
		result, compErrs := driver.Compile(source, filename)
		if len(compErrs) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatErrors(compErrs, true))
			return fmt.Errorf("compilation failed with %d error(s)", len(compErrs))
		}
		fmt.Println(result.IR)
	}

	return nil
}
