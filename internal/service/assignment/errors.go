package assignment

import "errors"

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidRiderID   = errors.New("invalid rider id")
	ErrNoEligibleRiders = errors.New("no eligible riders")
)
