package lock

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres держит pg_advisory_xact_lock на каждый ключ, пока выполняется fn.
// Запросы репозиториев внутри fn идут через ту же транзакцию (base.WithQuerier),
// поэтому guard занимает одно соединение пула. Блокировки снимаются при завершении транзакции.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin lock tx: %w", err)
	}
	defer func() {
		// откат нужен и после отмены запроса, иначе соединение не вернётся в пул чистым
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	for _, k := range normalize(keys) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryKey(k)); err != nil {
			return fmt.Errorf("advisory lock %s: %w", k, err)
		}
	}

	if err := fn(base.WithQuerier(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lock tx: %w", err)
	}
	return nil
}

func advisoryKey(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
