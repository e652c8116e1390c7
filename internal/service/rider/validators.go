package rider

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidRiderID(id int64) bool {
	return id > 0
}

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") || len(phone) < 2 {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func isValidAvailability(availability entities.RiderAvailabilityType) bool {
	switch availability {
	case entities.RiderOnline, entities.RiderOffline:
		return true
	default:
		return false
	}
}
