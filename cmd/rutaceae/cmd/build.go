package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Legendyboi/rutaceae/internal/config"
	"github.com/Legendyboi/rutaceae/internal/driver"
	"github.com/Legendyboi/rutaceae/internal/errors"
)

var (
	buildOutput string
	buildTarget string
)

var buildCmd = &cobra.Command{
	Use:   "build [file.rut]",
	Short: "Compile a Rutaceae source file to a native executable",
	Long: `Compile lexes, parses, and lowers a .rut file to LLVM IR, then
links it into a native executable via the system's cc.

Examples:
  # Build to the default output name ("output")
  rutaceae build hello.rut

  # Build to a named executable
  rutaceae build hello.rut -o hello`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output executable path (default: \"output\", or project config)")
	buildCmd.Flags().StringVar(&buildTarget, "target", "", "LLVM target triple (default: host)")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	proj, err := config.Load(config.DefaultFileName)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.DefaultFileName, err)
	}

	outPath := buildOutput
	if outPath == "" {
		outPath = proj.Output
	}
	triple := buildTarget
	if triple == "" {
		triple = proj.TargetTriple
	}

	isVerbose := verbose || proj.Verbose
	if isVerbose {
		absIn, _ := filepath.Abs(filename)
		absOut, _ := filepath.Abs(outPath)
		fmt.Fprintf(os.Stderr, "rutaceae build\n  input:  %s\n  output: %s\n", absIn, absOut)
	}

	result, compErrs := driver.CompileFile(filename)
	if len(compErrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(compErrs, true))
		return fmt.Errorf("compilation failed with %d error(s)", len(compErrs))
	}

	if isVerbose {
		fmt.Fprintln(os.Stderr, "--- emitted LLVM IR ---")
		fmt.Fprintln(os.Stderr, result.IR)
	}

	if err := driver.Build(result, outPath, triple); err != nil {
		return err
	}

	if isVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outPath)
	}
	return nil
}
