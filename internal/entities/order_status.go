package entities

type OrderStatusType string

const (
	OrderAwaitingAssignment OrderStatusType = "AWAITING_ASSIGNMENT"
	OrderAwaitingPickup     OrderStatusType = "AWAITING_PICKUP"
	OrderInTransit          OrderStatusType = "IN_TRANSIT"
	OrderDelivered          OrderStatusType = "DELIVERED"
	OrderCancelled          OrderStatusType = "CANCELLED"
)

const DefaultOrderStatus = OrderAwaitingAssignment

// Прямые ребра графа статусов. CANCELLED достижим из любого нетерминального статуса.
var orderStatusEdges = map[OrderStatusType][]OrderStatusType{
	OrderAwaitingAssignment: {OrderAwaitingPickup, OrderCancelled},
	OrderAwaitingPickup:     {OrderInTransit, OrderCancelled},
	OrderInTransit:          {OrderDelivered, OrderCancelled},
	OrderDelivered:          {},
	OrderCancelled:          {},
}

// StatusPresentation подсказки для UI: подпись статуса и кнопка действия курьера.
// ActionTarget пустой, если у статуса нет действия.
type StatusPresentation struct {
	Label        string
	ActionLabel  string
	ActionTarget OrderStatusType
}

var orderStatusPresentation = map[OrderStatusType]StatusPresentation{
	OrderAwaitingAssignment: {
		Label:        "Awaiting Rider Assignment",
		ActionLabel:  "Accept Order",
		ActionTarget: OrderAwaitingPickup,
	},
	OrderAwaitingPickup: {
		Label:        "Awaiting Pickup",
		ActionLabel:  "Mark as: Picked Up",
		ActionTarget: OrderInTransit,
	},
	OrderInTransit: {
		Label:        "In Transit",
		ActionLabel:  "Mark as: Delivered / Complete",
		ActionTarget: OrderDelivered,
	},
	OrderDelivered: {
		Label: "Delivered",
	},
	OrderCancelled: {
		Label: "Cancelled",
	},
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	_, ok := orderStatusEdges[s]
	return ok
}

// AllowedNext возвращает копию, вызывающий может ее менять.
func (s OrderStatusType) AllowedNext() []OrderStatusType {
	next := orderStatusEdges[s]
	result := make([]OrderStatusType, len(next))
	copy(result, next)
	return result
}

func (s OrderStatusType) IsTerminal() bool {
	return s.IsValid() && len(orderStatusEdges[s]) == 0
}

func (s OrderStatusType) CanTransitionTo(target OrderStatusType) bool {
	for _, next := range orderStatusEdges[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatusType) Presentation() StatusPresentation {
	return orderStatusPresentation[s]
}

func OrderStatuses() []OrderStatusType {
	return []OrderStatusType{
		OrderAwaitingAssignment,
		OrderAwaitingPickup,
		OrderInTransit,
		OrderDelivered,
		OrderCancelled,
	}
}
