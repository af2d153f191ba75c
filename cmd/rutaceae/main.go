// Command rutaceae compiles Rutaceae source files to native executables
// via LLVM IR.
package main

import (
	"fmt"
	"os"

	"github.com/Legendyboi/rutaceae/cmd/rutaceae/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
