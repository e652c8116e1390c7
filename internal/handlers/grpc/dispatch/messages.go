package dispatch

type GetOrderViewRequest struct {
	OrderID int64 `json:"order_id"`
}

type GetRiderDashboardRequest struct {
	RiderID int64 `json:"rider_id"`
}

type ToggleAvailabilityRequest struct {
	RiderID int64 `json:"rider_id"`
	Online  bool  `json:"online"`
}

type AcceptOfferRequest struct {
	RiderID int64 `json:"rider_id"`
	OrderID int64 `json:"order_id"`
}

type AdvanceDeliveryRequest struct {
	RiderID int64  `json:"rider_id"`
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}
