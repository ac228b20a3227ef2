package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"function-server/api/server"
	"function-server/config"
)

var (
	configFile string
	address    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "function-server",
		Short: "Model-agnostic AI function calling server",
		Long: `An OpenAI-compatible chat completions server with function calling support.
Requests are dispatched to a configurable model backend (Ollama, vLLM, or any
OpenAI-compatible API) and responses are normalized into the OpenAI envelope,
including structured function-call directives.`,
		RunE: runServe,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file path")
	rootCmd.Flags().StringVarP(&address, "address", "a", "", "listen address override (e.g. :8080)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(configFile); err != nil {
				return err
			}
			fmt.Println("configuration is valid")
			return nil
		},
	}
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	setupLogging(cfg.LogLevel)

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
