package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "restaurant", "pickup_address", "customer_name", "delivery_address",
	"distance_meters", "total_cents", "status", "assigned_rider_id", "version",
	"created_at", "assigned_at", "picked_up_at", "delivered_at", "cancelled_at", "updated_at",
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.ID == nil {
		return nil, fmt.Errorf("unexpected order repository create error: missing id")
	}

	columns := modifyColumns(&orderModify)
	columns["id"] = *orderModify.ID

	query, args, err := qb.Insert("orders").
		SetMap(columns).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, entities.ErrConflict
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderModel), nil
}

// Update применяет изменения, только если версия заказа не изменилась с момента чтения.
// Проигравший получает ErrConcurrentUpdate.
func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify, expectedVersion int64) (*entities.Order, error) {
	if orderModify.ID == nil {
		return nil, fmt.Errorf("unexpected order repository update error: missing id")
	}

	query, args, err := qb.Update("orders").
		SetMap(modifyColumns(&orderModify)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":      *orderModify.ID,
			"version": expectedVersion,
		}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(orderModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	query, args, err := qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel), nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]entities.Order, error) {
	if len(ids) == 0 {
		return []entities.Order{}, nil
	}

	query, args, err := qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyids error: %w", err)
	}

	return r.queryOrders(ctx, query, args)
}

// ListAwaitingAssignment заказы без исполнителя и без живого предложения, старые первыми.
func (r *Repository) ListAwaitingAssignment(ctx context.Context, limit uint64) ([]entities.Order, error) {
	query, args, err := qb.Select(prefixed("o", orderColumns)...).
		From("orders o").
		Where(sq.Eq{"o.status": entities.OrderAwaitingAssignment.String()}).
		Where(sq.Expr(`NOT EXISTS (
			SELECT 1 FROM offers f WHERE f.order_id = o.id AND f.status = ?
		)`, entities.OfferPending.String())).
		OrderBy("o.created_at", "o.id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository awaiting error: %w", err)
	}

	return r.queryOrders(ctx, query, args)
}

func (r *Repository) AppendTransitions(ctx context.Context, transitions ...entities.StatusTransition) error {
	if len(transitions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range transitions {
		batch.Queue(`INSERT INTO order_status_transitions (order_id, from_status, to_status, actor, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			t.OrderID, t.From.String(), t.To.String(), t.Actor, t.At,
		)
	}

	results := r.querier.SendBatch(ctx, batch)
	for range transitions {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
				return entities.ErrOrderNotFound
			}
			return fmt.Errorf("unexpected order repository transitions error: %w", err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("unexpected order repository transitions error: %w", err)
	}
	return nil
}

func (r *Repository) GetTransitions(ctx context.Context, orderID int64) ([]entities.StatusTransition, error) {
	query := `SELECT order_id, from_status, to_status, actor, created_at
		FROM order_status_transitions
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository transitions error: %w", err)
	}
	defer rows.Close()

	transitions := make([]entities.StatusTransition, 0, 4)
	for rows.Next() {
		var t StatusTransitionDB
		if err := rows.Scan(&t.OrderID, &t.FromStatus, &t.ToStatus, &t.Actor, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected order repository transitions error: %w", err)
		}
		transitions = append(transitions, TransitionToDomain(&t))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository transitions error: %w", err)
	}
	return transitions, nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args []any) ([]entities.Order, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository query error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository scan error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository query error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.Restaurant,
		&orderModel.PickupAddress,
		&orderModel.CustomerName,
		&orderModel.DeliveryAddress,
		&orderModel.DistanceMeters,
		&orderModel.TotalCents,
		&orderModel.Status,
		&orderModel.AssignedRiderID,
		&orderModel.Version,
		&orderModel.CreatedAt,
		&orderModel.AssignedAt,
		&orderModel.PickedUpAt,
		&orderModel.DeliveredAt,
		&orderModel.CancelledAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}

func prefixed(alias string, columns []string) []string {
	result := make([]string, len(columns))
	for i, column := range columns {
		result[i] = alias + "." + column
	}
	return result
}
