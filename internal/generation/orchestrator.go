// Package generation turns a finished interview transcript into the
// two final documents: the professional resume and the career
// insights profile. Both documents are produced in one atomic run; a
// partial result is never returned.
package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"

	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/schemas"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// maxGenerationTokens caps each document call. Two smaller calls avoid
// the truncation a single combined document hits.
const maxGenerationTokens = 8192

// generationTemperature keeps document output consistent across runs.
const generationTemperature = 0.1

// Orchestrator coordinates the two concurrent document calls.
type Orchestrator struct {
	client       llm.Client
	minUserTurns int
}

// NewOrchestrator returns an Orchestrator using the given client. A
// non-positive minUserTurns falls back to DefaultMinUserTurns.
func NewOrchestrator(client llm.Client, minUserTurns int) *Orchestrator {
	if minUserTurns <= 0 {
		minUserTurns = DefaultMinUserTurns
	}
	return &Orchestrator{client: client, minUserTurns: minUserTurns}
}

// Generate produces both documents from the transcript. The transcript
// is checked for substance before any provider call is made; a
// too-short conversation fails fast with ErrInsufficientInput. Both
// document calls run concurrently against the same rendered
// transcript, and any failure on either side surfaces as
// ErrGenerationFailed with nothing persisted.
func (o *Orchestrator) Generate(ctx context.Context, transcript []types.Message) (*types.FinalOutput, error) {
	if CountUserTurns(transcript) < o.minUserTurns {
		return nil, ErrInsufficientInput
	}

	conversationText := RenderTranscript(transcript)

	var resume types.ProfessionalResume
	var insights types.CareerInsights

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := o.generateDocument(gCtx, resumePrompt(conversationText), resumeGenSchema, resumeJSONSchema, &resume); err != nil {
			return fmt.Errorf("resume document: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := o.generateDocument(gCtx, insightsPrompt(conversationText), insightsGenSchema, insightsJSONSchema, &insights); err != nil {
			return fmt.Errorf("insights document: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &types.FinalOutput{
		ProfessionalResume: resume,
		CareerInsights:     insights,
	}, nil
}

// generateDocument runs one schema-constrained call, re-validates the
// payload, and decodes it into out.
func (o *Orchestrator) generateDocument(ctx context.Context, prompt string, genSchema *genai.Schema, jsonSchema string, out any) error {
	raw, err := o.client.GenerateJSON(ctx, prompt, llm.JSONParams{
		Tier:            llm.TierStandard,
		Temperature:     generationTemperature,
		MaxOutputTokens: maxGenerationTokens,
		Schema:          genSchema,
	})
	if err != nil {
		return err
	}

	if err := schemas.ValidateJSONString(jsonSchema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode document payload: %w", err)
	}
	return nil
}
