package types

import (
	"time"

	"github.com/google/uuid"
)

// Subscription plan values.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// ValidPlan reports whether s is one of the enumerated plan values.
func ValidPlan(s string) bool {
	switch s {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// User represents an account. Email is unique across all users.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	Plan          string     `json:"plan"`
	PlanExpiresAt *time.Time `json:"planExpiresAt,omitempty"`

	// Profile fields
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWithAuth is the storage-side view of a user including the bcrypt
// password hash. It never crosses the HTTP boundary.
type UserWithAuth struct {
	User
	PasswordHash string `json:"-"`
}

// Session is a time-bounded binding between an opaque token and a user.
// Sessions are immutable after creation; they are destroyed at logout
// or lazily when expiry is detected.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at the
// given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Resume is a persisted generation result owned by one user. Delete is
// logical: IsActive flips to false and the record is retained.
type Resume struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"userId"`
	Title   string    `json:"title"`
	Version int       `json:"version"`

	ProfessionalResumeData ProfessionalResume `json:"professionalResumeData"`
	CareerInsightsData     CareerInsights     `json:"careerInsightsData"`
	ConversationHistory    []Message          `json:"conversationHistory,omitempty"`

	Template string `json:"template"`
	IsActive bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResumeUpdate carries the partial fields an owner may change on a
// resume. Nil pointers mean "leave unchanged".
type ResumeUpdate struct {
	Title                  *string             `json:"title,omitempty"`
	ProfessionalResumeData *ProfessionalResume `json:"professionalResumeData,omitempty"`
	CareerInsightsData     *CareerInsights     `json:"careerInsightsData,omitempty"`
	Template               *string             `json:"template,omitempty"`
}

// UserUpdate carries the partial profile fields a user may change.
type UserUpdate struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
}

// Event is a best-effort analytics record.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	Event     string         `json:"event"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
