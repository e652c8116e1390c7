package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("operation not valid for current order status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAlreadyAccepted   = errors.New("order already accepted by another rider")
	ErrRiderIneligible   = errors.New("rider is not eligible")
	ErrNotAssignedRider  = errors.New("rider is not assigned to order")
	ErrAlreadyTerminal   = errors.New("order is already in terminal status")
	ErrOrderNotPending   = errors.New("order is not pending acceptance")

	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	ErrRiderNotFound = fmt.Errorf("rider %w", ErrNotFound)
	ErrOfferNotFound = fmt.Errorf("offer %w", ErrNotFound)

	ErrConflict = errors.New("resource already exists")

	// проигранный compare-and-set в хранилище, сервисы переводят в доменную ошибку
	ErrConcurrentUpdate = errors.New("concurrent update")
)
