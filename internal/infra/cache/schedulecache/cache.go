package schedulecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// ScheduleReader интерфейс чтения расписания, который декорирует кеш
type ScheduleReader interface {
	GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кеш недельных расписаний поверх репозитория
// Расписание мастера читается на каждый расчёт слотов, но меняется редко
type Cache struct {
	reader ScheduleReader
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает кеширующий декоратор над репозиторием расписаний
func New(reader ScheduleReader, client *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		reader: reader,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// GetByMaster возвращает расписание из кеша, при промахе читает из репозитория
// Ошибки Redis не фатальны: при недоступном кеше читаем напрямую из БД
func (c *Cache) GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error) {
	key := cacheKey(masterID)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var schedule domain.WeeklySchedule
		if err := json.Unmarshal(cached, &schedule); err == nil {
			return &schedule, nil
		}
		// Битое значение в кеше - перечитываем из БД
		c.log.Warn("schedulecache: corrupted cache entry for master=%d, falling back to db", masterID)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("schedulecache: redis get failed for master=%d: %v", masterID, err)
	}

	// Отсутствие расписания не кешируем - мастер мог его ещё не завести
	schedule, err := c.reader.GetByMaster(ctx, masterID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(schedule); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("schedulecache: redis set failed for master=%d: %v", masterID, err)
		}
	}

	return schedule, nil
}

// Invalidate сбрасывает кеш расписания мастера
// Вызывается после обновления расписания
func (c *Cache) Invalidate(ctx context.Context, masterID int64) {
	if err := c.client.Del(ctx, cacheKey(masterID)).Err(); err != nil {
		c.log.Warn("schedulecache: redis del failed for master=%d: %v", masterID, err)
	}
}

func cacheKey(masterID int64) string {
	return fmt.Sprintf("schedule:master:%d", masterID)
}
