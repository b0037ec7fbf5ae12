package server

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/generation"
	"github.com/Srujan0798/CareerMirror/internal/plan"
	"github.com/Srujan0798/CareerMirror/internal/store"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// Generator produces both final documents from a transcript.
type Generator interface {
	Generate(ctx context.Context, transcript []types.Message) (*types.FinalOutput, error)
}

// ResumeService provides business logic for resume records. Every
// operation is scoped to the authenticated user; cross-user access
// reads as not-found.
type ResumeService struct {
	backend   store.Backend
	policy    *plan.Policy
	generator Generator
}

// NewResumeService creates a new ResumeService with the given dependencies
func NewResumeService(backend store.Backend, policy *plan.Policy, generator Generator) *ResumeService {
	return &ResumeService{
		backend:   backend,
		policy:    policy,
		generator: generator,
	}
}

// List returns the user's active resumes, most recently updated first.
func (s *ResumeService) List(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	return s.backend.ListResumes(ctx, userID)
}

// Get fetches a resume and then authorizes against the recorded owner,
// so a soft-deleted record stays reachable to its owner while
// non-owners cannot distinguish absence from denial.
func (s *ResumeService) Get(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error) {
	resume, err := s.backend.GetResume(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrResumeNotFound) {
			return nil, store.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if resume.UserID != userID {
		return nil, store.ErrNotFoundOrForbidden
	}
	return resume, nil
}

// Create checks the plan quota, generates the documents when no
// pre-generated output is supplied, and persists the result. Quota
// denial happens before any provider call.
func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, req *types.SaveResumeRequest) (*types.Resume, error) {
	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.backend.CountActiveResumes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanCreateResume(&user.User, activeCount); err != nil {
		return nil, err
	}

	output := req.Output
	if output == nil {
		generated, err := s.generator.Generate(ctx, req.Transcript)
		if err != nil {
			return nil, err
		}
		output = generated
	}

	resume, err := s.backend.SaveResume(ctx, userID, *output, req.Transcript)
	if err != nil {
		return nil, err
	}

	_ = s.backend.LogEvent(ctx, "resume_created", &userID, map[string]any{
		"resumeId": resume.ID.String(),
		"template": resume.Template,
	})

	return resume, nil
}

// Update applies partial updates to an active resume the user owns.
func (s *ResumeService) Update(ctx context.Context, userID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	return s.backend.UpdateResume(ctx, userID, id, upd)
}

// Delete soft-deletes an active resume the user owns, freeing quota.
func (s *ResumeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.backend.SoftDeleteResume(ctx, userID, id); err != nil {
		return err
	}
	_ = s.backend.LogEvent(ctx, "resume_deleted", &userID, map[string]any{"resumeId": id.String()})
	return nil
}

var _ Generator = (*generation.Orchestrator)(nil)
