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

var runTarget string

var runCmd = &cobra.Command{
	Use:   "run [file.rut]",
	Short: "Compile and immediately execute a Rutaceae source file",
	Long: `Run compiles a .rut file the same way build does, then executes
the linked binary as a subprocess and relays its exit code.

This approximates in-process JIT execution: github.com/llir/llvm has no
cgo bindings to LLVM's MCJIT, so "run" compiles to a temporary
executable and runs it immediately rather than JITting in memory.

Examples:
  rutaceae run hello.rut`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runTarget, "target", "", "LLVM target triple (default: host)")
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]

	proj, err := config.Load(config.DefaultFileName)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.DefaultFileName, err)
	}

	triple := runTarget
	if triple == "" {
		triple = proj.TargetTriple
	}

	isVerbose := verbose || proj.Verbose
	if isVerbose {
		abs, _ := filepath.Abs(filename)
		fmt.Fprintf(os.Stderr, "rutaceae run\n  input: %s\n", abs)
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

	exitCode, err := driver.Run(result, triple, nil)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
