package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

// Remote is the remote backend strategy: it delegates to a managed
// PostgreSQL instance. In-memory lowerCamelCase field names map to
// lower_snake_case column names; the mapping is total and
// bidirectional for every persisted field.
type Remote struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

var _ Backend = (*Remote)(nil)

// OpenRemote connects to the managed backend and ensures the schema
// exists.
func OpenRemote(ctx context.Context, databaseURL string, sessionTTL time.Duration) (*Remote, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &Remote{pool: pool, ttl: sessionTTL, now: time.Now}
	if err := r.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the connection pool.
func (r *Remote) Close() error {
	r.pool.Close()
	return nil
}

func (r *Remote) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			plan TEXT NOT NULL DEFAULT 'free',
			plan_expires_at TIMESTAMPTZ,
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			linkedin TEXT NOT NULL DEFAULT '',
			portfolio TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email))`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			professional_resume_data JSONB NOT NULL,
			career_insights_data JSONB NOT NULL,
			conversation_history JSONB NOT NULL DEFAULT '[]',
			template TEXT NOT NULL DEFAULT 'classic',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS resumes_owner_active_idx ON resumes (user_id, is_active, updated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			user_id UUID,
			event TEXT NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const userColumns = `id, email, name, plan, plan_expires_at, phone, location, linkedin, portfolio, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*types.UserWithAuth, error) {
	var u types.UserWithAuth
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Plan, &u.PlanExpiresAt,
		&u.Phone, &u.Location, &u.LinkedIn, &u.Portfolio, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a free-plan user; a unique-index violation on the
// lowercased email maps to ErrDuplicateUser.
func (r *Remote) CreateUser(ctx context.Context, name, email, passwordHash string) (*types.UserWithAuth, error) {
	now := r.now().UTC()
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
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, plan, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.Plan, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (r *Remote) GetUser(ctx context.Context, id uuid.UUID) (*types.UserWithAuth, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the matching user or nil when absent.
func (r *Remote) GetUserByEmail(ctx context.Context, email string) (*types.UserWithAuth, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateUser applies partial profile updates.
func (r *Remote) UpdateUser(ctx context.Context, id uuid.UUID, upd types.UserUpdate) (*types.UserWithAuth, error) {
	query := `UPDATE users SET updated_at = $1`
	args := []any{r.now().UTC()}
	argNum := 2

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.Location != nil {
		set("location", *upd.Location)
	}
	if upd.LinkedIn != nil {
		set("linkedin", *upd.LinkedIn)
	}
	if upd.Portfolio != nil {
		set("portfolio", *upd.Portfolio)
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argNum, userColumns)
	args = append(args, id)

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdatePlan transitions the user to a new plan.
func (r *Remote) UpdatePlan(ctx context.Context, id uuid.UUID, plan string, expiresAt *time.Time) (*types.UserWithAuth, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET plan = $1, plan_expires_at = $2, updated_at = $3
		 WHERE id = $4 RETURNING `+userColumns,
		plan, expiresAt, r.now().UTC(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return user, nil
}

// CreateSession issues a new session with a fresh opaque token.
func (r *Remote) CreateSession(ctx context.Context, userID uuid.UUID) (*types.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := r.now().UTC()
	session := types.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.UserID, session.Token, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// ResolveToken maps a token to its owner, destroying expired sessions
// eagerly so expiry is reported exactly once per token.
func (r *Remote) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	var s types.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = $1`,
		token,
	).Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if s.Expired(r.now()) {
		if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, s.ID); err != nil {
			return uuid.Nil, fmt.Errorf("failed to destroy expired session: %w", err)
		}
		return uuid.Nil, ErrSessionExpired
	}
	return s.UserID, nil
}

// DestroySession removes the session bound to token, if any.
func (r *Remote) DestroySession(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

const resumeColumns = `id, user_id, title, version, professional_resume_data, career_insights_data, conversation_history, template, is_active, created_at, updated_at`

func scanResume(row pgx.Row) (*types.Resume, error) {
	var (
		res       types.Resume
		resumeRaw []byte
		insRaw    []byte
		histRaw   []byte
	)
	err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.Version,
		&resumeRaw, &insRaw, &histRaw, &res.Template, &res.IsActive,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resumeRaw, &res.ProfessionalResumeData); err != nil {
		return nil, fmt.Errorf("failed to decode resume document: %w", err)
	}
	if err := json.Unmarshal(insRaw, &res.CareerInsightsData); err != nil {
		return nil, fmt.Errorf("failed to decode insights document: %w", err)
	}
	if len(histRaw) > 0 {
		if err := json.Unmarshal(histRaw, &res.ConversationHistory); err != nil {
			return nil, fmt.Errorf("failed to decode conversation history: %w", err)
		}
	}
	return &res, nil
}

// ListResumes returns the owner's active resumes, most recently
// updated first.
func (r *Remote) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.Resume, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1 AND is_active ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]types.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *res)
	}
	return resumes, rows.Err()
}

// GetResume returns the record with the given id regardless of owner
// or active state.
func (r *Remote) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	res, err := scanResume(r.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return res, nil
}

// SaveResume persists a generation result as a new version-1 resume.
func (r *Remote) SaveResume(ctx context.Context, ownerID uuid.UUID, output types.FinalOutput, transcript []types.Message) (*types.Resume, error) {
	resumeData, err := json.Marshal(output.ProfessionalResume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}
	insightsData, err := json.Marshal(output.CareerInsights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insights document: %w", err)
	}
	if transcript == nil {
		transcript = []types.Message{}
	}
	history, err := json.Marshal(transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversation history: %w", err)
	}

	now := r.now().UTC()
	id := uuid.New()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, title, version, professional_resume_data,
			career_insights_data, conversation_history, template, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, 1, $4, $5, $6, $7, TRUE, $8, $8)`,
		id, ownerID, resumeTitle(output), resumeData, insightsData, history, DefaultTemplate, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return r.GetResume(ctx, id)
}

// CountActiveResumes returns the number of active resumes the owner
// holds.
func (r *Remote) CountActiveResumes(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE user_id = $1 AND is_active`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count, nil
}

// UpdateResume applies partial updates to an active resume matching
// both id and owner. The WHERE clause enforces the merged
// not-found-or-forbidden semantics.
func (r *Remote) UpdateResume(ctx context.Context, ownerID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	query := `UPDATE resumes SET updated_at = $1`
	args := []any{r.now().UTC()}
	argNum := 2

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.ProfessionalResumeData != nil {
		data, err := json.Marshal(upd.ProfessionalResumeData)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resume document: %w", err)
		}
		set("professional_resume_data", data)
	}
	if upd.CareerInsightsData != nil {
		data, err := json.Marshal(upd.CareerInsightsData)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal insights document: %w", err)
		}
		set("career_insights_data", data)
	}
	if upd.Template != nil {
		set("template", *upd.Template)
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d AND is_active RETURNING %s",
		argNum, argNum+1, resumeColumns)
	args = append(args, id, ownerID)

	res, err := scanResume(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return res, nil
}

// SoftDeleteResume flips is_active off; the row is retained.
func (r *Remote) SoftDeleteResume(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE resumes SET is_active = FALSE, updated_at = $1
		 WHERE id = $2 AND user_id = $3 AND is_active`,
		r.now().UTC(), id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// LogEvent appends an analytics record.
func (r *Remote) LogEvent(ctx context.Context, event string, userID *uuid.UUID, metadata map[string]any) error {
	var meta []byte
	if metadata != nil {
		var err error
		meta, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal event metadata: %w", err)
		}
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, user_id, event, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, event, meta, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}
