package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/ribbon/internal/adapters/httpapi"
	"github.com/aretw0/ribbon/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session HTTP server",
	Long: `Starts an HTTP server that hosts simulations as sessions: clients create
a session from a definition, advance it micro-step by micro-step and inspect
the tape over a JSON API. Sessions live in memory and die with the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		listen, _ := cmd.Flags().GetString("listen")
		if !cmd.Flags().Changed("listen") && cfg.Listen != "" {
			listen = cfg.Listen
		}
		debug, _ := cmd.Flags().GetBool("debug")

		level := slog.LevelInfo
		if debug || cfg.Debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		api := httpapi.NewServer(httpapi.WithLogger(logger))
		srv := &http.Server{
			Addr:    listen,
			Handler: api.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Ribbon Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Ribbon Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}
