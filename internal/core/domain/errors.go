package domain

import "errors"

var (
	// ErrAccountNotFound is returned when the referenced account id is not part
	// of the roster.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountType ...
	ErrInvalidAccountType = errors.New("account type must be either KEY_BASED or SMART_WALLET")
	// ErrMissingAccountAddress ...
	ErrMissingAccountAddress = errors.New("account address must not be empty")
	// ErrUnknownResource ...
	ErrUnknownResource = errors.New("unknown resource")
)
