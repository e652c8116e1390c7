package entities

import "time"

type Rider struct {
	ID            int64
	Name          string
	Phone         string
	Availability  RiderAvailabilityType
	ActiveOrderID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsEligible курьер может получать новые предложения: онлайн и без активной доставки.
func (r *Rider) IsEligible() bool {
	return r.Availability == RiderOnline && r.ActiveOrderID == nil
}

type RiderAvailabilityType string

const (
	RiderOnline  RiderAvailabilityType = "ONLINE"
	RiderOffline RiderAvailabilityType = "OFFLINE"
)

const DefaultRiderAvailability = RiderOffline

func (t RiderAvailabilityType) String() string {
	return string(t)
}

func AvailabilityFromBool(online bool) RiderAvailabilityType {
	if online {
		return RiderOnline
	}
	return RiderOffline
}

type RiderModify struct {
	ID           *int64
	Name         *string
	Phone        *string
	Availability *RiderAvailabilityType
}
