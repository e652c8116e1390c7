package order

import "strings"

func isValidOrderID(orderID int64) bool {
	return orderID > 0
}

func isNonBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func isValidAmount(amount int64) bool {
	return amount >= 0
}
