package offer

import "time"

type OfferDB struct {
	ID         int64
	OrderID    int64
	Candidates []int64
	Status     string
	OfferedAt  time.Time
	ExpiresAt  time.Time
	ResolvedAt *time.Time
	AcceptedBy *int64
}
