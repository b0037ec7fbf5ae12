// Package plan enforces subscription entitlements. The policy is pure:
// it looks at a user record and a current resource count and decides,
// so both backend strategies and every transport share one rule set.
package plan

import (
	"fmt"
	"time"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

// FreeActiveResumeLimit is the number of active resumes a free-plan
// user may hold.
const FreeActiveResumeLimit = 1

// QuotaError reports a plan-limit denial together with whether a paid
// tier would lift the limit.
type QuotaError struct {
	Plan             string
	Limit            int
	UpgradeAvailable bool
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("plan %q allows at most %d active resume(s)", e.Plan, e.Limit)
}

// Limit returns the active-resume cap for a plan, or -1 when the plan
// is unlimited.
func Limit(planName string) int {
	if planName == types.PlanFree {
		return FreeActiveResumeLimit
	}
	return -1
}

// Policy evaluates plan entitlements against a clock, so expiry checks
// are deterministic in tests.
type Policy struct {
	now func() time.Time
}

// NewPolicy returns a Policy using wall-clock time.
func NewPolicy() *Policy {
	return &Policy{now: time.Now}
}

// Effective returns the plan the user is entitled to right now. A paid
// plan past its expiry timestamp counts as free; a nil expiry means
// the plan does not lapse.
func (p *Policy) Effective(user *types.User) string {
	if user.Plan == types.PlanFree {
		return types.PlanFree
	}
	if user.PlanExpiresAt != nil && !user.PlanExpiresAt.After(p.now()) {
		return types.PlanFree
	}
	return user.Plan
}

// CanCreateResume decides whether the user may add another active
// resume given how many they already hold. Denials are reported as a
// *QuotaError.
func (p *Policy) CanCreateResume(user *types.User, activeCount int) error {
	if p.Effective(user) != types.PlanFree {
		return nil
	}
	if activeCount < FreeActiveResumeLimit {
		return nil
	}
	return &QuotaError{
		Plan:             types.PlanFree,
		Limit:            FreeActiveResumeLimit,
		UpgradeAvailable: true,
	}
}
