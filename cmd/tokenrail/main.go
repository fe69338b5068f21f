package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenrail/internal/logging"
)

var (
	// Global flags
	verbose      bool
	manifestPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tokenrail",
	Short: "tokenrail - grammar-constrained ReAct transcript tooling",
	Long: `tokenrail builds and checks the structural grammar of ReAct reasoning
transcripts: Thought / Action / Final-Answer steps, with Action restricted
to the capabilities declared in a manifest.

The grammar engine is incremental: it accepts input in arbitrary chunks and
reports, at every point, the byte prefix any valid continuation must start
with. This command exposes that engine for checking transcripts and for
printing the instruction prompt a constrained model is primed with.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "tokenrail.yaml", "path to the capability manifest")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(promptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
