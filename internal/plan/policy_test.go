package plan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

func fixedPolicy(at time.Time) *Policy {
	return &Policy{now: func() time.Time { return at }}
}

func TestCanCreateResume(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name        string
		plan        string
		expiresAt   *time.Time
		activeCount int
		wantDenied  bool
	}{
		{name: "free under limit", plan: types.PlanFree, activeCount: 0},
		{name: "free at limit", plan: types.PlanFree, activeCount: 1, wantDenied: true},
		{name: "free over limit", plan: types.PlanFree, activeCount: 3, wantDenied: true},
		{name: "pro unlimited", plan: types.PlanPro, activeCount: 50},
		{name: "pro with future expiry", plan: types.PlanPro, expiresAt: &future, activeCount: 5},
		{name: "pro lapsed", plan: types.PlanPro, expiresAt: &past, activeCount: 1, wantDenied: true},
		{name: "enterprise lapsed under limit", plan: types.PlanEnterprise, expiresAt: &past, activeCount: 0},
		{name: "enterprise unlimited", plan: types.PlanEnterprise, activeCount: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fixedPolicy(now)
			user := &types.User{Plan: tt.plan, PlanExpiresAt: tt.expiresAt}

			err := p.CanCreateResume(user, tt.activeCount)
			if !tt.wantDenied {
				assert.NoError(t, err)
				return
			}
			var quota *QuotaError
			require.True(t, errors.As(err, &quota))
			assert.Equal(t, types.PlanFree, quota.Plan)
			assert.Equal(t, FreeActiveResumeLimit, quota.Limit)
			assert.True(t, quota.UpgradeAvailable)
		})
	}
}

func TestEffectivePlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := fixedPolicy(now)

	past := now.Add(-time.Minute)
	assert.Equal(t, types.PlanFree, p.Effective(&types.User{Plan: types.PlanPro, PlanExpiresAt: &past}))
	assert.Equal(t, types.PlanPro, p.Effective(&types.User{Plan: types.PlanPro}))
	assert.Equal(t, types.PlanFree, p.Effective(&types.User{Plan: types.PlanFree}))

	// Expiry exactly now counts as lapsed.
	assert.Equal(t, types.PlanFree, p.Effective(&types.User{Plan: types.PlanEnterprise, PlanExpiresAt: &now}))
}

func TestLimit(t *testing.T) {
	assert.Equal(t, FreeActiveResumeLimit, Limit(types.PlanFree))
	assert.Equal(t, -1, Limit(types.PlanPro))
	assert.Equal(t, -1, Limit(types.PlanEnterprise))
}
