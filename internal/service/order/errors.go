package order

import "errors"

var (
	ErrUndefinedEvent        = errors.New("undefined order event")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidRestaurant     = errors.New("invalid restaurant")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidCustomerName   = errors.New("invalid customer name")
	ErrInvalidAmount         = errors.New("invalid amount")
)
