package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Srujan0798/CareerMirror/internal/config"
	"github.com/Srujan0798/CareerMirror/internal/generation"
	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate resume and insights documents from a saved transcript",
	Long:  "Reads an interview transcript from a JSON file, runs both document generations against the Gemini API, and writes the combined output as JSON.",
	RunE:  runGenerate,
}

var (
	generateTranscript string
	generateOutput     string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTranscript, "transcript", "t", "", "Path to transcript JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default: stdout)")

	if err := generateCmd.MarkFlagRequired("transcript"); err != nil {
		panic(fmt.Sprintf("failed to mark transcript flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	raw, err := os.ReadFile(generateTranscript)
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}

	var transcript []types.Message
	if err := json.Unmarshal(raw, &transcript); err != nil {
		return fmt.Errorf("failed to parse transcript JSON: %w", err)
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	orchestrator := generation.NewOrchestrator(client, cfg.MinTranscriptTurns)

	output, err := orchestrator.Generate(ctx, transcript)
	if err != nil {
		return fmt.Errorf("failed to generate documents: %w", err)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if generateOutput == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(generateOutput, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully generated documents for %s\n", output.ProfessionalResume.PersonalInfo.Name)
	_, _ = fmt.Fprintf(os.Stdout, "Saved to %s\n", generateOutput)

	return nil
}
