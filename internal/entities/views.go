package entities

type OrderSnapshot struct {
	Order       Order
	Label       string
	ActionLabel string
	NextStatus  OrderStatusType
	IsTerminal  bool
}

func NewOrderSnapshot(order Order) OrderSnapshot {
	presentation := order.Status.Presentation()
	return OrderSnapshot{
		Order:       order,
		Label:       presentation.Label,
		ActionLabel: presentation.ActionLabel,
		NextStatus:  presentation.ActionTarget,
		IsTerminal:  order.Status.IsTerminal(),
	}
}

type OfferView struct {
	Offer Offer
	Order OrderSnapshot
}

// RiderDashboard. PendingOffers пустой, пока курьер офлайн или занят доставкой.
type RiderDashboard struct {
	Rider          Rider
	PendingOffers  []OfferView
	ActiveDelivery *OrderSnapshot
}
