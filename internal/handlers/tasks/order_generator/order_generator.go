package order_generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"dispatch/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	eventCreated   = "created"
	eventCancelled = "cancelled"
)

var EventsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_generator_events_sent_total",
		Help: "Total number of synthetic order events sent by result",
	},
	[]string{"event", "result"},
)

var (
	restaurants = []string{"Pho Corner", "Taco Stand", "Green Bowl", "Dumpling House", "Pizza Forno"}
	streets     = []string{"Market St", "Elm St", "Oak Ave", "Pier Rd", "Hill Blvd", "Lake Dr"}
	customers   = []string{"Dana", "Lee", "Sam", "Alex", "Robin", "Kim"}
)

type Publisher interface {
	SendJSON(ctx context.Context, key string, value any) error
}

type orderEvent struct {
	Event string       `json:"event"`
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	ID              int64   `json:"id"`
	Restaurant      *string `json:"restaurant,omitempty"`
	PickupAddress   *string `json:"pickup_address,omitempty"`
	CustomerName    *string `json:"customer_name,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	DistanceMeters  *int64  `json:"distance_meters,omitempty"`
	TotalCents      *int64  `json:"total_cents,omitempty"`
}

// OrderGenerator на каждый запуск публикует событие нового заказа.
// Каждое cancelEvery-е событие вместо этого отменяет последний созданный заказ.
type OrderGenerator struct {
	log         logger.Logger
	publisher   Publisher
	interval    time.Duration
	cancelEvery int

	mu      sync.Mutex
	rnd     *rand.Rand
	nextID  int64
	sent    int
	created []int64
}

func New(log logger.Logger, publisher Publisher, interval time.Duration, cancelEvery int, firstID int64, rnd *rand.Rand) *OrderGenerator {
	return &OrderGenerator{
		log:         log,
		publisher:   publisher,
		interval:    interval,
		cancelEvery: cancelEvery,
		rnd:         rnd,
		nextID:      firstID,
	}
}

func (g *OrderGenerator) TTL() time.Duration {
	return g.interval
}

func (g *OrderGenerator) Info() string {
	return "order generator"
}

func (g *OrderGenerator) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, g.interval)
	defer cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sent++
	event := g.nextEvent()

	err := g.publisher.SendJSON(ctxWithTimeout, strconv.FormatInt(event.Order.ID, 10), event)
	if err != nil {
		EventsSentTotal.WithLabelValues(event.Event, "error").Inc()
		return fmt.Errorf("publish %s event for order %d: %w", event.Event, event.Order.ID, err)
	}
	EventsSentTotal.WithLabelValues(event.Event, "ok").Inc()

	if event.Event == eventCreated {
		g.created = append(g.created, event.Order.ID)
	} else {
		g.created = g.created[:len(g.created)-1]
	}

	g.log.With(
		logger.NewField("event", event.Event),
		logger.NewField("order_id", event.Order.ID),
	).Info("order event sent")
	return nil
}

func (g *OrderGenerator) nextEvent() orderEvent {
	if g.cancelEvery > 0 && g.sent%g.cancelEvery == 0 && len(g.created) > 0 {
		return orderEvent{
			Event: eventCancelled,
			Order: orderPayload{ID: g.created[len(g.created)-1]},
		}
	}

	id := g.nextID
	g.nextID++

	restaurant := restaurants[g.rnd.IntN(len(restaurants))]
	pickup := fmt.Sprintf("%d %s", 1+g.rnd.IntN(200), streets[g.rnd.IntN(len(streets))])
	customer := customers[g.rnd.IntN(len(customers))]
	delivery := fmt.Sprintf("%d %s", 1+g.rnd.IntN(200), streets[g.rnd.IntN(len(streets))])
	distance := int64(300 + g.rnd.IntN(7000))
	total := int64(500 + g.rnd.IntN(9500))

	return orderEvent{
		Event: eventCreated,
		Order: orderPayload{
			ID:              id,
			Restaurant:      &restaurant,
			PickupAddress:   &pickup,
			CustomerName:    &customer,
			DeliveryAddress: &delivery,
			DistanceMeters:  &distance,
			TotalCents:      &total,
		},
	}
}
