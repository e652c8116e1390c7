package rider

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

var riderColumns = []string{
	"id", "name", "phone", "availability", "active_order_id", "created_at", "updated_at",
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, riderModifyEntity entities.RiderModify) (int64, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)

	builder := qb.Insert("riders")
	if riderModifyModel.ID != nil {
		builder = builder.
			Columns("id", "name", "phone", "availability").
			Values(riderModifyModel.ID, riderModifyModel.Name, riderModifyModel.Phone, riderModifyModel.Availability)
	} else {
		builder = builder.
			Columns("name", "phone", "availability").
			Values(riderModifyModel.Name, riderModifyModel.Phone, riderModifyModel.Availability)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	var id int64
	err = r.querier.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, entities.ErrConflict
		}
		return 0, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)

	builder := qb.Update("riders")

	// опционнные поля
	if riderModifyModel.Name != nil {
		builder = builder.Set("name", riderModifyModel.Name)
	}
	if riderModifyModel.Phone != nil {
		builder = builder.Set("phone", riderModifyModel.Phone)
	}
	if riderModifyModel.Availability != nil {
		builder = builder.Set("availability", riderModifyModel.Availability)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": riderModifyModel.ID})

	rider, err := r.updateReturning(ctx, builder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrRiderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, entities.ErrConflict
		}
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	return rider, nil
}

// BindActiveOrder compare-and-set: курьер онлайн и без активной доставки.
func (r *Repository) BindActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error) {
	builder := qb.Update("riders").
		Set("active_order_id", orderID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":              riderID,
			"availability":    entities.RiderOnline.String(),
			"active_order_id": nil,
		})

	rider, err := r.updateReturning(ctx, builder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected rider repository bind error: %w", err)
	}

	return rider, nil
}

func (r *Repository) ReleaseActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error) {
	builder := qb.Update("riders").
		Set("active_order_id", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":              riderID,
			"active_order_id": orderID,
		})

	rider, err := r.updateReturning(ctx, builder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected rider repository release error: %w", err)
	}

	return rider, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Rider, error) {
	query, args, err := qb.Select(riderColumns...).
		From("riders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrRiderNotFound
		}
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	return ToDomain(riderModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Rider, error) {
	query, args, err := qb.Select(riderColumns...).
		From("riders").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}
	defer rows.Close()

	riderModels := make([]RiderDB, 0, 8)
	for rows.Next() {
		riderModel, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
		}
		riderModels = append(riderModels, *riderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}

	return ToDomainList(riderModels), nil
}

func (r *Repository) ListEligibleIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("id").
		From("riders").
		Where(sq.Eq{
			"availability":    entities.RiderOnline.String(),
			"active_order_id": nil,
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository eligible error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository eligible error: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository eligible error: %w", err)
	}

	return ids, nil
}

func (r *Repository) updateReturning(ctx context.Context, builder sq.UpdateBuilder) (*entities.Rider, error) {
	query, args, err := builder.Suffix("RETURNING " + strings.Join(riderColumns, ", ")).ToSql()
	if err != nil {
		return nil, err
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return ToDomain(riderModel), nil
}

func scanRider(row pgx.Row) (*RiderDB, error) {
	var riderModel RiderDB
	err := row.Scan(
		&riderModel.ID,
		&riderModel.Name,
		&riderModel.Phone,
		&riderModel.Availability,
		&riderModel.ActiveOrderID,
		&riderModel.CreatedAt,
		&riderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &riderModel, nil
}
