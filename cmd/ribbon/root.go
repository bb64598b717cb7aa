package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ribbon",
	Short: "Ribbon is an animated Turing machine simulator",
	Long: `Ribbon parses plain text machine definitions and executes them step by
step over a bi-infinite tape, animating every phase of every transition in
the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration file (default: probe .ribbon.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to Stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Mirror logs as JSON into this file")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress system messages")
}

// loadConfig resolves the configuration for a command. An explicit --config
// path must exist; without one the working directory is probed for a
// .ribbon.{yaml,yml,json} file and defaults apply when none is found.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault(".")
}
