package delivery

import "errors"

var (
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidRiderID      = errors.New("invalid rider id")
	ErrInvalidTargetStatus = errors.New("invalid target status")
)
