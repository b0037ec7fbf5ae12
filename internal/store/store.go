// Package store provides the persistence layer for CareerMirror. Two
// interchangeable strategies implement the same Backend contract: a
// local SQLite store fully owned by the process, and a remote managed
// PostgreSQL store. Selection happens once at startup (see Open) and
// the chosen Backend is injected into every higher-level component.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

// UserStore provides CRUD over user accounts.
type UserStore interface {
	// CreateUser creates a user on the free plan. Email comparison is
	// case-insensitive; a collision fails with ErrDuplicateUser.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*types.UserWithAuth, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.UserWithAuth, error)
	// GetUserByEmail returns nil without error when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*types.UserWithAuth, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd types.UserUpdate) (*types.UserWithAuth, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string, expiresAt *time.Time) (*types.UserWithAuth, error)
}

// SessionStore issues, resolves, and destroys opaque session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, userID uuid.UUID) (*types.Session, error)
	// ResolveToken returns the owning user id. An expired session is
	// destroyed as a side effect and reported as ErrSessionExpired; a
	// subsequent resolve of the same token reports ErrSessionNotFound.
	ResolveToken(ctx context.Context, token string) (uuid.UUID, error)
	// DestroySession is idempotent: destroying an unknown token is not
	// an error.
	DestroySession(ctx context.Context, token string) error
}

// ResumeStore provides CRUD over resume records with soft-delete
// semantics. Mutations require both id and owner to match an active
// record; a miss is reported as the merged ErrNotFoundOrForbidden so
// existence never leaks to non-owners.
type ResumeStore interface {
	// ListResumes returns the owner's active resumes, most recently
	// updated first.
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.Resume, error)
	// GetResume returns the record regardless of caller identity and
	// active state; the caller authorizes against the recorded owner
	// after the fetch.
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	SaveResume(ctx context.Context, ownerID uuid.UUID, output types.FinalOutput, transcript []types.Message) (*types.Resume, error)
	CountActiveResumes(ctx context.Context, ownerID uuid.UUID) (int, error)
	UpdateResume(ctx context.Context, ownerID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error)
	SoftDeleteResume(ctx context.Context, ownerID, id uuid.UUID) error
}

// EventStore records best-effort analytics events.
type EventStore interface {
	LogEvent(ctx context.Context, event string, userID *uuid.UUID, metadata map[string]any) error
}

// Backend is the full persistence contract both strategies satisfy.
type Backend interface {
	UserStore
	SessionStore
	ResumeStore
	EventStore
	Close() error
}

// DefaultTemplate is assigned to every newly saved resume.
const DefaultTemplate = "classic"

// UntitledResume is the title used when the generated document carries
// no candidate name.
const UntitledResume = "Untitled Resume"

// resumeTitle derives a resume title from the generated document.
func resumeTitle(output types.FinalOutput) string {
	if name := output.ProfessionalResume.PersonalInfo.Name; name != "" {
		return name
	}
	return UntitledResume
}

// newToken returns an opaque session token: 32 random bytes, hex
// encoded. No consumer other than the session store may derive meaning
// from it.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
