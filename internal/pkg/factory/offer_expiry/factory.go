package offer_expiry

import (
	"time"
)

const DefaultOfferTTL = 30 * time.Second

type OfferTimeFactory struct {
	ttl time.Duration
}

func New(ttl time.Duration) *OfferTimeFactory {
	if ttl <= 0 {
		ttl = DefaultOfferTTL
	}

	return &OfferTimeFactory{
		ttl: ttl,
	}
}

func (f *OfferTimeFactory) CalculateExpiry(baseTime time.Time) time.Time {
	return baseTime.Add(f.ttl)
}
