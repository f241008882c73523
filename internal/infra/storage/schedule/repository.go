package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/pkg/dbmetrics"
	"github.com/relaxity/RLX-BookingService/pkg/psqlbuilder"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Repository репозиторий недельного расписания мастеров
// Записи хранятся в schedule_entries, перерывы - в schedule_breaks
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMaster получает недельное расписание мастера с перерывами
// Если у мастера нет ни одной записи, возвращает ErrScheduleNotFound
func (r *Repository) GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"weekday",
		"is_working_day",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("schedule_entries").
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMaster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMaster - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.ScheduleEntry, 0, 7)
	entryIDs := make([]int64, 0, 7)

	for rows.Next() {
		var entry domain.ScheduleEntry
		var startTime, endTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.MasterID,
			&entry.Weekday,
			&entry.IsWorkingDay,
			&startTime,
			&endTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMaster - scan entry: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			if err := entry.StartTime.Scan(startTime.String); err != nil {
				return nil, fmt.Errorf("%w: GetByMaster - parse start_time: %v", ErrScanRow, err)
			}
		}
		if endTime.Valid {
			if err := entry.EndTime.Scan(endTime.String); err != nil {
				return nil, fmt.Errorf("%w: GetByMaster - parse end_time: %v", ErrScanRow, err)
			}
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMaster - rows error: %v", ErrScanRow, err)
	}

	if len(entries) == 0 {
		return nil, ErrScheduleNotFound
	}

	breaksByEntry, err := r.getBreaks(ctx, executor, entryIDs)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Breaks = breaksByEntry[entries[i].ID]
	}

	return &domain.WeeklySchedule{MasterID: masterID, Entries: entries}, nil
}

// ReplaceForMaster заменяет недельное расписание мастера целиком
// Вызывается внутри транзакции: старые записи удаляются, новые вставляются
func (r *Repository) ReplaceForMaster(ctx context.Context, masterID int64, entries []domain.ScheduleEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Перерывы удаляются каскадно по FK
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("schedule_entries").
		Where(squirrel.Eq{"master_id": masterID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForMaster - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForMaster - delete old entries: %v", ErrExecQuery, err)
	}

	for i := range entries {
		entry := &entries[i]

		insertQuery, insertArgs, err := psqlbuilder.Insert("schedule_entries").
			Columns("master_id", "weekday", "is_working_day", "start_time", "end_time").
			Values(masterID, entry.Weekday, entry.IsWorkingDay, nullableTime(entry.StartTime), nullableTime(entry.EndTime)).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceForMaster - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&entry.ID); err != nil {
			return fmt.Errorf("%w: ReplaceForMaster - insert entry: %v", ErrExecQuery, err)
		}

		for _, br := range entry.Breaks {
			breakQuery, breakArgs, err := psqlbuilder.Insert("schedule_breaks").
				Columns("schedule_entry_id", "start_time", "end_time").
				Values(entry.ID, br.StartTime, br.EndTime).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: ReplaceForMaster - build break insert: %v", ErrBuildQuery, err)
			}

			if _, err := executor.ExecContext(ctx, breakQuery, breakArgs...); err != nil {
				return fmt.Errorf("%w: ReplaceForMaster - insert break: %v", ErrExecQuery, err)
			}
		}
	}

	return nil
}

func (r *Repository) getBreaks(ctx context.Context, executor dbmetrics.DBExecutor, entryIDs []int64) (map[int64][]domain.BreakInterval, error) {
	query, args, err := psqlbuilder.Select(
		"schedule_entry_id",
		"start_time",
		"end_time",
	).
		From("schedule_breaks").
		Where(squirrel.Eq{"schedule_entry_id": entryIDs}).
		OrderBy("schedule_entry_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.BreakInterval)

	for rows.Next() {
		var entryID int64
		var br domain.BreakInterval

		if err := rows.Scan(&entryID, &br.StartTime, &br.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getBreaks - scan row: %v", ErrScanRow, err)
		}

		result[entryID] = append(result[entryID], br)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBreaks - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// nullableTime конвертирует пустое время в NULL для нерабочих дней
func nullableTime(t types.TimeString) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
