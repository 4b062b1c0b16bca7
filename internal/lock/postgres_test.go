package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool подключается к TEST_DB_DSN с маленьким пулом
func newTestPool(t *testing.T, maxConns int32) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgres_MoreWritersThanConnections(t *testing.T) {
	pool := newTestPool(t, 2)
	guard := NewPostgres(pool)
	repo := base.NewRepository(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// разные дни: блокировки не мешают друг другу, делится только пул
			day := time.Date(2025, 12, 1+i, 0, 0, 0, 0, time.UTC)
			errs <- guard.Do(ctx, []string{DayKey(day)}, func(ctx context.Context) error {
				var one int
				if err := repo.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
					return err
				}
				_, err := repo.ExecAffected(ctx, `SELECT pg_sleep(0.05)`)
				return err
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPostgres_SerializesSameKey(t *testing.T) {
	pool := newTestPool(t, 4)
	guard := NewPostgres(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := guard.Do(ctx, []string{"day:2025-12-01"}, func(context.Context) error {
				v := counter
				time.Sleep(20 * time.Millisecond)
				counter = v + 1
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, counter)
}
