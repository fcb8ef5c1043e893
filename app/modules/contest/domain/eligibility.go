package contestdomain

import (
	"fmt"
	"time"
)

// NotEligibleError reports a failed registration precondition. The reason is
// user-facing and always surfaced to the caller.
type NotEligibleError struct {
	Reason string
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("not eligible: %s", e.Reason)
}

// RegistrationCheck carries the facts needed to judge a registration
// attempt. Callers gather them from storage; the check itself is pure.
type RegistrationCheck struct {
	Now               time.Time
	CreditBalance     int
	AlreadyRegistered bool
	RegistrantCount   int
	IsCommunityMember bool
}

// CheckRegistrationEligibility enforces the registration preconditions:
// the registration window is open, the user is not already registered,
// an entry credit is available when the contest charges one, capacity
// is not exhausted, and community-restricted contests only admit members.
// Returns nil when every precondition holds; a *NotEligibleError otherwise.
func CheckRegistrationEligibility(c Contest, check RegistrationCheck) error {
	if !check.Now.Before(c.RegistrationEndDate) {
		return &NotEligibleError{Reason: "registration window has closed"}
	}
	if check.AlreadyRegistered {
		return &NotEligibleError{Reason: "already registered for this contest"}
	}
	if !c.IsFree() && check.CreditBalance < c.EntryFeeCredits {
		return &NotEligibleError{Reason: "no entry credit available"}
	}
	if c.MaxPlayers > 0 && check.RegistrantCount >= c.MaxPlayers {
		return &NotEligibleError{Reason: "contest is full"}
	}
	if c.CommunityID != "" && !check.IsCommunityMember {
		return &NotEligibleError{Reason: "contest is restricted to community members"}
	}
	return nil
}
