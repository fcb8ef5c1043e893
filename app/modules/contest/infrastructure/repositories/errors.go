package contestdb

import "errors"

var (
	// ErrContestNotFound is returned when no contest matches the ID.
	ErrContestNotFound = errors.New("contest not found")

	// ErrRegistrationNotFound is returned when no registration exists for
	// the (contest, user) pair.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrRegistrationExists is returned on a duplicate registration insert.
	ErrRegistrationExists = errors.New("registration already exists")
)
