package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/pkg/dbmetrics"
	"github.com/relaxity/RLX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий политик бронирования мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMaster получает политику бронирования мастера
func (r *Repository) GetByMaster(ctx context.Context, masterID int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"min_lead_time_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{"master_id": masterID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMaster - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.MasterID,
		&p.MinLeadTimeMinutes,
		&p.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMaster - scan policy: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или обновляет политику бронирования мастера
func (r *Repository) Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns("master_id", "min_lead_time_minutes", "advance_booking_days").
		Values(policy.MasterID, policy.MinLeadTimeMinutes, policy.AdvanceBookingDays).
		Suffix(`ON CONFLICT (master_id) DO UPDATE SET
			min_lead_time_minutes = EXCLUDED.min_lead_time_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
