package streakdb

import "errors"

// Sentinel errors for the repository layer. These signal database state, not
// business rule failures; the service layer decides what they mean.
var (
	// ErrStreakNotFound indicates the user has no streak row yet.
	ErrStreakNotFound = errors.New("user streak not found")
)
