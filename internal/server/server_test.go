package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srujan0798/CareerMirror/internal/config"
	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/store"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

const testResumeJSON = `{
	"personalInfo": {"name": "Jane Doe", "email": "jane@example.com"},
	"summary": "Backend engineer focused on data infrastructure.",
	"experience": [
		{"company": "Acme", "position": "Engineer", "achievements": ["Cut job latency 40%"]}
	],
	"skills": {"technical": ["Go"], "soft": ["Mentoring"]}
}`

const testInsightsJSON = `{
	"personalityProfile": {"workStyle": "Collaborative Builder"},
	"idealRoles": [{"title": "Platform Engineer", "reasoning": "Build-heavy", "matchScore": 90}],
	"environments": {"preferred": ["Remote-first"], "toAvoid": ["Rigid hierarchy"]},
	"careerPath": {"shortTerm": ["Lead a project"], "longTerm": ["Staff engineer"]},
	"redFlags": ["No code review culture"],
	"recommendations": ["Learn distributed tracing"]
}`

// stubLLM satisfies llm.Client with canned structured replies.
type stubLLM struct {
	jsonErr   error
	chatReply string
}

func (f *stubLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", errors.New("not used")
}

func (f *stubLLM) GenerateJSON(_ context.Context, prompt string, _ llm.JSONParams) (string, error) {
	if f.jsonErr != nil {
		return "", f.jsonErr
	}
	if strings.Contains(prompt, "ATS-optimized resume") {
		return testResumeJSON, nil
	}
	return testInsightsJSON, nil
}

func (f *stubLLM) Chat(_ context.Context, _ string, _ []llm.Turn, _ string) (string, error) {
	return f.chatReply, nil
}

func (f *stubLLM) GetModel(_ llm.ModelTier) string { return "stub-model" }

func (f *stubLLM) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) (*Server, store.Backend) {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("BCRYPT_COST", "10")

	backend, err := store.OpenLocal(":memory:", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	cfg := &config.Config{Port: 0, SessionTTL: time.Hour, MinTranscriptTurns: 2}
	srv, err := New(cfg, backend, client)
	require.NoError(t, err)
	return srv, backend
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func signup(t *testing.T, handler http.Handler, email string) (string, types.User) {
	t.Helper()
	rec := doJSON(t, handler, "POST", "/auth/signup", "", map[string]string{
		"name":     "Jane",
		"email":    email,
		"password": "swordfish123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token, *resp.User
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	rec := doJSON(t, srv.Handler(), "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupAndDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()

	token, user := signup(t, handler, "jane@x.com")
	assert.NotEmpty(t, token)
	assert.Equal(t, types.PlanFree, user.Plan)

	rec := doJSON(t, handler, "POST", "/auth/signup", "", map[string]string{
		"name":     "Janet",
		"email":    "JANE@X.COM",
		"password": "swordfish123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeEmailExists, decodeBody(t, rec)["error"])
}

func TestLoginGenericFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	signup(t, handler, "jane@x.com")

	wrongPassword := doJSON(t, handler, "POST", "/auth/login", "", map[string]string{
		"email":    "jane@x.com",
		"password": "not-the-password",
	})
	unknownEmail := doJSON(t, handler, "POST", "/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "swordfish123",
	})

	// Wrong password and unknown account are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, decodeBody(t, wrongPassword)["error"], decodeBody(t, unknownEmail)["error"])
}

func TestMeRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()

	rec := doJSON(t, handler, "GET", "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUnauthenticated, decodeBody(t, rec)["error"])

	token, user := signup(t, handler, "jane@x.com")
	rec = doJSON(t, handler, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.Email, decodeBody(t, rec)["email"])
}

func TestLogoutInvalidatesSession(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUnauthenticated, decodeBody(t, rec)["error"])
}

func TestExpiredSessionIsDistinct(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("BCRYPT_COST", "10")

	backend, err := store.OpenLocal(":memory:", time.Nanosecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	cfg := &config.Config{SessionTTL: time.Nanosecond, MinTranscriptTurns: 2}
	srv, err := New(cfg, backend, &stubLLM{})
	require.NoError(t, err)
	handler := srv.Handler()

	token, _ := signup(t, handler, "jane@x.com")
	time.Sleep(time.Millisecond)

	rec := doJSON(t, handler, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeSessionExpired, decodeBody(t, rec)["error"])

	// The expired session was destroyed; the same token now reads as
	// plain unauthenticated.
	rec = doJSON(t, handler, "GET", "/auth/me", token, nil)
	assert.Equal(t, CodeUnauthenticated, decodeBody(t, rec)["error"])
}

func generationRequest() map[string]any {
	return map[string]any{
		"transcript": []map[string]string{
			{"id": "1", "role": "model", "text": "What do you do?"},
			{"id": "2", "role": "user", "text": "I build data pipelines."},
			{"id": "3", "role": "model", "text": "Biggest win?"},
			{"id": "4", "role": "user", "text": "Cut latency by 40 percent."},
		},
	}
}

func TestCreateResumeFromTranscript(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resume types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	assert.Equal(t, "Jane Doe", resume.Title)
	assert.Equal(t, "classic", resume.Template)
	assert.True(t, resume.IsActive)
	assert.Len(t, resume.ConversationHistory, 4)
}

func TestFreePlanQuota(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var first types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, CodeQuotaExceeded, body["error"])
	assert.Equal(t, true, body["upgrade_available"])

	// Soft-deleting frees the quota slot.
	rec = doJSON(t, handler, "DELETE", fmt.Sprintf("/resumes/%s", first.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpgradeLiftsQuota(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, user := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, "POST", fmt.Sprintf("/users/%s/upgrade", user.ID), token, map[string]string{"plan": "pro"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, types.PlanPro, decodeBody(t, rec)["plan"])

	rec = doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestInsufficientTranscript(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, map[string]any{
		"transcript": []map[string]string{
			{"id": "1", "role": "user", "text": "hello"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, CodeInsufficientInput, decodeBody(t, rec)["error"])
}

func TestGenerationFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{jsonErr: errors.New("deadline exceeded")})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, CodeGenerationFailed, decodeBody(t, rec)["error"])
}

func TestResumeIsolationBetweenUsers(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	ownerToken, _ := signup(t, handler, "jane@x.com")
	otherToken, _ := signup(t, handler, "eve@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", ownerToken, generationRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var resume types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))

	// Non-owner access reads as not found, for real and random ids alike.
	rec = doJSON(t, handler, "GET", fmt.Sprintf("/resumes/%s", resume.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decodeBody(t, rec)["error"])

	rec = doJSON(t, handler, "DELETE", fmt.Sprintf("/resumes/%s", resume.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	list := doJSON(t, handler, "GET", "/resumes", otherToken, nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, "[]", strings.TrimSpace(list.Body.String()))
}

func TestSoftDeletedResumeVisibleToOwner(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/resumes", token, generationRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var resume types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))

	rec = doJSON(t, handler, "DELETE", fmt.Sprintf("/resumes/%s", resume.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Hidden from the listing, still fetchable by id.
	list := doJSON(t, handler, "GET", "/resumes", token, nil)
	assert.Equal(t, "[]", strings.TrimSpace(list.Body.String()))

	rec = doJSON(t, handler, "GET", fmt.Sprintf("/resumes/%s", resume.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["isActive"])

	// A soft-deleted resume can no longer be updated.
	rec = doJSON(t, handler, "PUT", fmt.Sprintf("/resumes/%s", resume.ID), token, map[string]string{"title": "New"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUserOwnershipEnforced(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")
	_, other := signup(t, handler, "eve@x.com")

	rec := doJSON(t, handler, "PUT", fmt.Sprintf("/users/%s", other.ID), token, map[string]string{"location": "Berlin"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeForbidden, decodeBody(t, rec)["error"])

	rec = doJSON(t, handler, "PUT", fmt.Sprintf("/users/%s", token), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRelay(t *testing.T) {
	srv, _ := newTestServer(t, &stubLLM{chatReply: "Tell me about your proudest project."})
	handler := srv.Handler()
	token, _ := signup(t, handler, "jane@x.com")

	rec := doJSON(t, handler, "POST", "/chat", token, map[string]any{
		"history": []map[string]string{},
		"message": "Hi, I'd like to build my resume.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tell me about your proudest project.", decodeBody(t, rec)["reply"])

	rec = doJSON(t, handler, "POST", "/chat", "", map[string]any{"message": "hello"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
