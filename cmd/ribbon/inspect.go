package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/internal/presentation/graph"
	"github.com/aretw0/ribbon/internal/presentation/tui"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a readable summary of a machine",
	Long:  `Parses the definition and prints its states, halting states and transition table as rendered markdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("machine", "m", "", "Path to the machine definition file")
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
}

func runInspect(cmd *cobra.Command) error {
	machinePath, _ := cmd.Flags().GetString("machine")
	if machinePath == "" {
		return fmt.Errorf("a machine definition file is required (use --machine)")
	}

	m, err := ribbon.LoadMachine(machinePath)
	if err != nil {
		return err
	}

	markdown := graph.MarkdownSummary(m)

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Print(markdown)
		return nil
	}

	render := tui.NewRenderer()
	out, err := render(markdown)
	if err != nil {
		// Styling failed; the raw markdown is still useful.
		fmt.Print(markdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
