package offer

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OfferDB) *entities.Offer {
	if o == nil {
		return nil
	}

	candidates := o.Candidates
	if candidates == nil {
		candidates = []int64{}
	}

	return &entities.Offer{
		ID:         o.ID,
		OrderID:    o.OrderID,
		Candidates: candidates,
		Status:     entities.OfferStatusType(o.Status),
		OfferedAt:  o.OfferedAt,
		ExpiresAt:  o.ExpiresAt,
		ResolvedAt: o.ResolvedAt,
		AcceptedBy: o.AcceptedBy,
	}
}

func ToDomainList(offersDB []OfferDB) []entities.Offer {
	if len(offersDB) == 0 {
		return []entities.Offer{}
	}

	result := make([]entities.Offer, len(offersDB))
	for i := range offersDB {
		result[i] = *ToDomain(&offersDB[i])
	}
	return result
}
