package orbital

import "github.com/cockroachdb/errors"

var (
	ErrInvalidSubshell        = errors.New("invalid subshell identifier")
	ErrUnknownExceptionTarget = errors.New("exception names a subshell outside the fill order")
	ErrInconsistentException  = errors.New("exception bounds do not match the plain fill")
	ErrUnderRemoval           = errors.New("cation removal ran out of electrons")
	ErrInvalidZ               = errors.New("atomic number must be at least 1")
	ErrCapacityExceeded       = errors.New("more electrons than the fill order can hold")
)
