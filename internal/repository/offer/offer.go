package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var offerColumns = []string{
	"id", "order_id", "candidates", "status", "offered_at", "expires_at", "resolved_at", "accepted_by",
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create второе живое предложение на тот же заказ упирается в частичный
// уникальный индекс и возвращается как ErrConflict.
func (r *Repository) Create(ctx context.Context, offer entities.Offer) (*entities.Offer, error) {
	query, args, err := qb.Insert("offers").
		Columns("order_id", "candidates", "status", "offered_at", "expires_at").
		Values(offer.OrderID, offer.Candidates, entities.OfferPending.String(), offer.OfferedAt, offer.ExpiresAt).
		Suffix("RETURNING " + strings.Join(offerColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}

	offerModel, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, entities.ErrConflict
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}

	return ToDomain(offerModel), nil
}

func (r *Repository) GetPendingByOrderID(ctx context.Context, orderID int64) (*entities.Offer, error) {
	query, args, err := qb.Select(offerColumns...).
		From("offers").
		Where(sq.Eq{
			"order_id": orderID,
			"status":   entities.OfferPending.String(),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository pending error: %w", err)
	}

	offerModel, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOfferNotFound
		}
		return nil, fmt.Errorf("unexpected offer repository pending error: %w", err)
	}

	return ToDomain(offerModel), nil
}

// Resolve закрывает предложение ровно один раз: повторное закрытие дает ErrConcurrentUpdate.
func (r *Repository) Resolve(ctx context.Context, resolve entities.OfferResolve) (*entities.Offer, error) {
	query, args, err := qb.Update("offers").
		Set("status", resolve.Status.String()).
		Set("resolved_at", resolve.ResolvedAt).
		Set("accepted_by", resolve.AcceptedBy).
		Where(sq.Eq{
			"id":     resolve.OfferID,
			"status": entities.OfferPending.String(),
		}).
		Suffix("RETURNING " + strings.Join(offerColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository resolve error: %w", err)
	}

	offerModel, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected offer repository resolve error: %w", err)
	}

	return ToDomain(offerModel), nil
}

func (r *Repository) ListPendingByCandidate(ctx context.Context, riderID int64, now time.Time) ([]entities.Offer, error) {
	query, args, err := qb.Select(offerColumns...).
		From("offers").
		Where(sq.Eq{"status": entities.OfferPending.String()}).
		Where(sq.Expr("candidates @> ARRAY[?]::BIGINT[]", riderID)).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("offered_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository candidate error: %w", err)
	}

	return r.queryOffers(ctx, query, args)
}

func (r *Repository) ListDue(ctx context.Context, now time.Time, limit uint64) ([]entities.Offer, error) {
	query, args, err := qb.Select(offerColumns...).
		From("offers").
		Where(sq.Eq{"status": entities.OfferPending.String()}).
		Where(sq.LtOrEq{"expires_at": now}).
		OrderBy("expires_at", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository due error: %w", err)
	}

	return r.queryOffers(ctx, query, args)
}

func (r *Repository) queryOffers(ctx context.Context, query string, args []any) ([]entities.Offer, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository query error: %w", err)
	}
	defer rows.Close()

	offerModels := make([]OfferDB, 0, 4)
	for rows.Next() {
		offerModel, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected offer repository scan error: %w", err)
		}
		offerModels = append(offerModels, *offerModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected offer repository query error: %w", err)
	}

	return ToDomainList(offerModels), nil
}

func scanOffer(row pgx.Row) (*OfferDB, error) {
	var offerModel OfferDB
	err := row.Scan(
		&offerModel.ID,
		&offerModel.OrderID,
		&offerModel.Candidates,
		&offerModel.Status,
		&offerModel.OfferedAt,
		&offerModel.ExpiresAt,
		&offerModel.ResolvedAt,
		&offerModel.AcceptedBy,
	)
	if err != nil {
		return nil, err
	}
	return &offerModel, nil
}
