package progressiondomain

import "errors"

var (
	// ErrInvalidState rejects mutation of an already-completed record.
	// Indicates a caller bug; log it, don't surface it to the user.
	ErrInvalidState = errors.New("activity already completed")

	// ErrAlreadyCompletedToday rejects a second daily-cadence completion on
	// the same calendar day. Informational, not a failure.
	ErrAlreadyCompletedToday = errors.New("already completed today")

	// ErrCooldownActive rejects a weekly-cadence completion before seven
	// days have elapsed. Informational, not a failure.
	ErrCooldownActive = errors.New("cooldown active")
)
