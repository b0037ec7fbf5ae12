package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

// Local is the local backend strategy: all state lives in a SQLite
// file fully owned by the process, one key-value table per entity
// kind. Filtering and ordering happen in Go over decoded rows, so the
// behavior matches the remote strategy exactly.
type Local struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ Backend = (*Local)(nil)

const (
	tableUsers    = "users"
	tableSessions = "sessions"
	tableResumes  = "resumes"
	tableEvents   = "events"
)

// OpenLocal opens (creating if necessary) the SQLite store at path.
// Use ":memory:" for an ephemeral store in tests.
func OpenLocal(path string, sessionTTL time.Duration) (*Local, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	// A single connection keeps each logical write atomic and makes
	// ":memory:" stores behave as one database.
	db.SetMaxOpenConns(1)

	for _, table := range []string{tableUsers, tableSessions, tableResumes, tableEvents} {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT NOT NULL PRIMARY KEY,
			data TEXT NOT NULL
		)`, table)
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	return &Local{db: db, ttl: sessionTTL, now: time.Now}, nil
}

// Close closes the underlying database.
func (l *Local) Close() error {
	return l.db.Close()
}

// loadRows decodes every row of a table. Malformed rows are skipped so
// corrupted persisted state degrades to an empty table instead of an
// error.
func loadRows[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT data FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row in %s: %w", table, err)
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (l *Local) put(ctx context.Context, table string, id uuid.UUID, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", table, err)
	}
	_, err = l.db.ExecContext(ctx,
		"INSERT INTO "+table+" (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		id.String(), string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s record: %w", table, err)
	}
	return nil
}

func (l *Local) delete(ctx context.Context, table string, id uuid.UUID) error {
	if _, err := l.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id.String()); err != nil {
		return fmt.Errorf("failed to delete %s record: %w", table, err)
	}
	return nil
}

// CreateUser creates a free-plan user. Email uniqueness is enforced
// case-insensitively.
func (l *Local) CreateUser(ctx context.Context, name, email, passwordHash string) (*types.UserWithAuth, error) {
	existing, err := l.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	now := l.now().UTC()
	user := types.UserWithAuth{
		User: types.User{
			ID:        uuid.New(),
			Email:     email,
			Name:      name,
			Plan:      types.PlanFree,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	if err := l.put(ctx, tableUsers, user.ID, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (l *Local) GetUser(ctx context.Context, id uuid.UUID) (*types.UserWithAuth, error) {
	users, err := loadRows[types.UserWithAuth](ctx, l.db, tableUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// GetUserByEmail returns the matching user or nil when absent.
func (l *Local) GetUserByEmail(ctx context.Context, email string) (*types.UserWithAuth, error) {
	users, err := loadRows[types.UserWithAuth](ctx, l.db, tableUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UpdateUser applies partial profile updates.
func (l *Local) UpdateUser(ctx context.Context, id uuid.UUID, upd types.UserUpdate) (*types.UserWithAuth, error) {
	user, err := l.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Location != nil {
		user.Location = *upd.Location
	}
	if upd.LinkedIn != nil {
		user.LinkedIn = *upd.LinkedIn
	}
	if upd.Portfolio != nil {
		user.Portfolio = *upd.Portfolio
	}
	user.UpdatedAt = l.now().UTC()
	if err := l.put(ctx, tableUsers, user.ID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePlan transitions the user to a new plan.
func (l *Local) UpdatePlan(ctx context.Context, id uuid.UUID, plan string, expiresAt *time.Time) (*types.UserWithAuth, error) {
	user, err := l.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Plan = plan
	user.PlanExpiresAt = expiresAt
	user.UpdatedAt = l.now().UTC()
	if err := l.put(ctx, tableUsers, user.ID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSession issues a new session with a fresh opaque token.
func (l *Local) CreateSession(ctx context.Context, userID uuid.UUID) (*types.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := l.now().UTC()
	session := types.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(l.ttl),
	}
	if err := l.put(ctx, tableSessions, session.ID, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ResolveToken maps a token to its owner. Expired sessions are
// destroyed eagerly, so expiry is reported exactly once per token.
func (l *Local) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	sessions, err := loadRows[types.Session](ctx, l.db, tableSessions)
	if err != nil {
		return uuid.Nil, err
	}
	for _, s := range sessions {
		if s.Token != token {
			continue
		}
		if s.Expired(l.now()) {
			if err := l.delete(ctx, tableSessions, s.ID); err != nil {
				return uuid.Nil, err
			}
			return uuid.Nil, ErrSessionExpired
		}
		return s.UserID, nil
	}
	return uuid.Nil, ErrSessionNotFound
}

// DestroySession removes the session bound to token, if any.
func (l *Local) DestroySession(ctx context.Context, token string) error {
	sessions, err := loadRows[types.Session](ctx, l.db, tableSessions)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.Token == token {
			return l.delete(ctx, tableSessions, s.ID)
		}
	}
	return nil
}

// ListResumes returns the owner's active resumes, most recently
// updated first.
func (l *Local) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.Resume, error) {
	all, err := loadRows[types.Resume](ctx, l.db, tableResumes)
	if err != nil {
		return nil, err
	}
	resumes := make([]types.Resume, 0)
	for _, r := range all {
		if r.UserID == ownerID && r.IsActive {
			resumes = append(resumes, r)
		}
	}
	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
	})
	return resumes, nil
}

// GetResume returns the record with the given id regardless of owner
// or active state.
func (l *Local) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	all, err := loadRows[types.Resume](ctx, l.db, tableResumes)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrResumeNotFound
}

// SaveResume persists a generation result as a new version-1 resume
// with a frozen copy of the transcript that produced it.
func (l *Local) SaveResume(ctx context.Context, ownerID uuid.UUID, output types.FinalOutput, transcript []types.Message) (*types.Resume, error) {
	now := l.now().UTC()
	frozen := make([]types.Message, len(transcript))
	copy(frozen, transcript)

	resume := types.Resume{
		ID:                     uuid.New(),
		UserID:                 ownerID,
		Title:                  resumeTitle(output),
		Version:                1,
		ProfessionalResumeData: output.ProfessionalResume,
		CareerInsightsData:     output.CareerInsights,
		ConversationHistory:    frozen,
		Template:               DefaultTemplate,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := l.put(ctx, tableResumes, resume.ID, resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// CountActiveResumes returns the number of active resumes the owner
// holds, for quota evaluation.
func (l *Local) CountActiveResumes(ctx context.Context, ownerID uuid.UUID) (int, error) {
	resumes, err := l.ListResumes(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return len(resumes), nil
}

// UpdateResume applies partial updates to an active resume matching
// both id and owner.
func (l *Local) UpdateResume(ctx context.Context, ownerID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	resume, err := l.getOwnedActive(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		resume.Title = *upd.Title
	}
	if upd.ProfessionalResumeData != nil {
		resume.ProfessionalResumeData = *upd.ProfessionalResumeData
	}
	if upd.CareerInsightsData != nil {
		resume.CareerInsightsData = *upd.CareerInsightsData
	}
	if upd.Template != nil {
		resume.Template = *upd.Template
	}
	resume.UpdatedAt = l.now().UTC()
	if err := l.put(ctx, tableResumes, resume.ID, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// SoftDeleteResume flips IsActive off; id and history are retained.
func (l *Local) SoftDeleteResume(ctx context.Context, ownerID, id uuid.UUID) error {
	resume, err := l.getOwnedActive(ctx, ownerID, id)
	if err != nil {
		return err
	}
	resume.IsActive = false
	resume.UpdatedAt = l.now().UTC()
	return l.put(ctx, tableResumes, resume.ID, resume)
}

// getOwnedActive fetches an active resume matching both id and owner,
// reporting the merged ErrNotFoundOrForbidden on any miss.
func (l *Local) getOwnedActive(ctx context.Context, ownerID, id uuid.UUID) (*types.Resume, error) {
	all, err := loadRows[types.Resume](ctx, l.db, tableResumes)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id && all[i].UserID == ownerID && all[i].IsActive {
			return &all[i], nil
		}
	}
	return nil, ErrNotFoundOrForbidden
}

// LogEvent appends an analytics record.
func (l *Local) LogEvent(ctx context.Context, event string, userID *uuid.UUID, metadata map[string]any) error {
	rec := types.Event{
		ID:        uuid.New(),
		UserID:    userID,
		Event:     event,
		Metadata:  metadata,
		CreatedAt: l.now().UTC(),
	}
	return l.put(ctx, tableEvents, rec.ID, rec)
}
