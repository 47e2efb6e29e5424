// Command specgo runs self-modeling mixture analysis on CSV spectral
// datasets from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "specgo",
	Short: "Self-modeling mixture analysis for spectroscopic data",
	Long: `specgo resolves pure-component spectra and concentration profiles from
matrices of mixture spectra using SIMPLISMA-style purest-variable
extraction (Windig, Chemom. Intell. Lab. Syst. 36, 1997, 3-16).`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
