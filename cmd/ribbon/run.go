package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run a machine over an input tape",
	Long: `Runs the machine against the input text, animating the tape in the
terminal. While the animation plays, 'a' accelerates, 's' slows down and 'q'
interrupts the run.

Use --headless for a plain final summary or --json for one NDJSON event per
micro-step.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMachine(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("machine", "m", "", "Path to the machine definition file")
	runCmd.Flags().Float64P("interval", "i", 0.3, "Seconds between animation steps")
	runCmd.Flags().Bool("headless", false, "Skip the animation and print the final state")
	runCmd.Flags().Bool("json", false, "Stream step events as NDJSON to Stdout")
	runCmd.Flags().Bool("verbose", false, "With --headless, print every phase")
	runCmd.Flags().Int("max-steps", 0, "Interrupt the run after this many steps (0 = unlimited)")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}

func runMachine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	machinePath, _ := cmd.Flags().GetString("machine")

	// Flags win over the configuration file, which wins over defaults.
	interval, _ := cmd.Flags().GetFloat64("interval")
	if !cmd.Flags().Changed("interval") && cfg.Interval > 0 {
		interval = cfg.Interval
	}
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	if !cmd.Flags().Changed("max-steps") && cfg.MaxSteps > 0 {
		maxSteps = cfg.MaxSteps
	}
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		logFile = cfg.LogFile
	}
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	headless, _ := cmd.Flags().GetBool("headless")
	jsonMode, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	return cli.Execute(cli.RunOptions{
		MachinePath: machinePath,
		Input:       input,
		Interval:    interval,
		MaxSteps:    maxSteps,
		Headless:    headless,
		JSON:        jsonMode,
		Verbose:     verbose,
		Quiet:       quiet,
		Debug:       debug || cfg.Debug,
		LogFile:     logFile,
	})
}
