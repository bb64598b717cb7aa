package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state graph visualization",
	Long:  `Parses the definition and outputs a Mermaid state diagram of its transition table.`,
	Run: func(cmd *cobra.Command, args []string) {
		machinePath, _ := cmd.Flags().GetString("machine")
		if machinePath == "" {
			fmt.Println("Error: a machine definition file is required (use --machine)")
			os.Exit(1)
		}

		m, err := ribbon.LoadMachine(machinePath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.Mermaid(m))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("machine", "m", "", "Path to the machine definition file")
}
