package household

import "errors"

// Domain errors for household operations

var (
	ErrNoMembers           = errors.New("household must have at least one member")
	ErrDuplicateMemberName = errors.New("member name already exists in household")
	ErrInvalidPeriod       = errors.New("unknown period token")
	ErrInvalidTimeCeiling  = errors.New("time ceiling must be greater than 0")
	ErrProfileNotFound     = errors.New("household profile not found")
)
