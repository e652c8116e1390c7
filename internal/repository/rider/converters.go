package rider

import (
	"dispatch/internal/entities"
)

func ToDomain(r *RiderDB) *entities.Rider {
	if r == nil {
		return nil
	}

	return &entities.Rider{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Availability:  entities.RiderAvailabilityType(r.Availability),
		ActiveOrderID: r.ActiveOrderID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func FromDomainModify(riderModify *entities.RiderModify) *RiderModifyDB {
	if riderModify == nil {
		return nil
	}
	riderDB := &RiderModifyDB{
		ID:    riderModify.ID,
		Name:  riderModify.Name,
		Phone: riderModify.Phone,
	}

	if riderModify.Availability != nil {
		availability := riderModify.Availability.String()
		riderDB.Availability = &availability
	}

	return riderDB
}

func ToDomainList(ridersDB []RiderDB) []entities.Rider {
	if len(ridersDB) == 0 {
		return []entities.Rider{}
	}

	result := make([]entities.Rider, len(ridersDB))
	for i := range ridersDB {
		result[i] = *ToDomain(&ridersDB[i])
	}
	return result
}
