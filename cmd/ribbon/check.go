package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/internal/validator"
	"github.com/aretw0/ribbon/pkg/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [input]",
	Short: "Check a machine definition for errors",
	Long: `Parses the definition (and the optional input tape) and reports the
first error with its line or column. Legal but suspicious definitions, such
as transition rules no run can reach, produce warnings.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(cmd, args); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("machine", "m", "", "Path to the machine definition file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	machinePath, _ := cmd.Flags().GetString("machine")
	if machinePath == "" {
		return fmt.Errorf("a machine definition file is required (use --machine)")
	}

	m, err := ribbon.LoadMachine(machinePath)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if _, err := parser.ParseInput(args[0]); err != nil {
			return fmt.Errorf("input %q: %w", args[0], err)
		}
	}

	for _, warning := range validator.Check(m) {
		fmt.Printf("warning: %s\n", warning)
	}

	fmt.Println("Machine is valid! ✅")
	return nil
}
