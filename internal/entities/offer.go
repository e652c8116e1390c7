package entities

import (
	"slices"
	"time"
)

// Offer предложение заказа набору курьеров. На заказ не больше одного PENDING.
type Offer struct {
	ID         int64
	OrderID    int64
	Candidates []int64
	Status     OfferStatusType
	OfferedAt  time.Time
	ExpiresAt  time.Time
	ResolvedAt *time.Time
	AcceptedBy *int64
}

func (o *Offer) HasCandidate(riderID int64) bool {
	return slices.Contains(o.Candidates, riderID)
}

func (o *Offer) IsExpiredAt(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

type OfferStatusType string

const (
	OfferPending   OfferStatusType = "PENDING"
	OfferAccepted  OfferStatusType = "ACCEPTED"
	OfferExpired   OfferStatusType = "EXPIRED"
	OfferCancelled OfferStatusType = "CANCELLED"
)

func (t OfferStatusType) String() string {
	return string(t)
}

type OfferResolve struct {
	OfferID    int64
	Status     OfferStatusType
	ResolvedAt time.Time
	AcceptedBy *int64
}
