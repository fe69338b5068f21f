package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tokenrail/internal/config"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [question...]",
	Short: "Print the instruction prompt for the manifest's capabilities",
	Long: `Assembles the ReAct instruction prompt from the capability manifest:
the Thought/Action/Observation/Final-Answer boilerplate, every declared
capability's name and description in declaration order, and the question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	manifest, err := config.Load(manifestPath)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	fmt.Fprint(cmd.OutOrStdout(), manifest.Registry().Prompt(question))
	return nil
}
