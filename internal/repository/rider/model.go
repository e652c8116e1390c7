package rider

import "time"

type RiderDB struct {
	ID            int64
	Name          string
	Phone         string
	Availability  string
	ActiveOrderID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RiderModifyDB struct {
	ID           *int64
	Name         *string
	Phone        *string
	Availability *string
}
