package progressiondb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrActivityNotFound indicates the catalog has no such activity.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrProgressNotFound indicates the user has no progress record for
	// the activity.
	ErrProgressNotFound = errors.New("activity progress not found")

	// ErrProgressExists indicates an insert hit an existing
	// (user, activity) progress row.
	ErrProgressExists = errors.New("activity progress already exists")
)
