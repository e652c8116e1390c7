package assignment

func isValidOrderID(orderID int64) bool {
	return orderID > 0
}

func isValidRiderID(riderID int64) bool {
	return riderID > 0
}
