package main

import (
	"context"
	"fmt"

	"github.com/Srujan0798/CareerMirror/internal/config"
	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/server"
	"github.com/Srujan0798/CareerMirror/internal/store"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for accounts, resume generation, and the interview chat.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage backend: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	srv, err := server.New(cfg, backend, llmClient)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
