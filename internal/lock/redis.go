package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

var (
	// ErrLockTimeout блокировку не удалось получить за отведённое время
	ErrLockTimeout = errors.New("lock wait timeout")
	// ErrLockLost ключ истёк или перехвачен, пока выполнялся fn
	ErrLockLost = errors.New("lock lost")
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Redis блокировки через SET NX PX, общие для нескольких экземпляров сервиса.
// Пока выполняется fn, ключи продлеваются каждую треть ttl; ttl же ограничивает ожидание захвата.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	poll   time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{client: client, ttl: ttl, poll: 50 * time.Millisecond}
}

func (r *Redis) Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	token, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate lock token: %w", err)
	}

	held := make([]string, 0, len(keys))
	defer func() {
		// Снимаем даже при отменённом контексте запроса
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, k := range held {
			_ = releaseScript.Run(releaseCtx, r.client, []string{k}, token).Err()
		}
	}()

	for _, k := range normalize(keys) {
		key := "lock:" + k
		if err := r.acquire(ctx, key, token); err != nil {
			return err
		}
		held = append(held, key)
	}

	fnCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	done := make(chan struct{})
	renewed := make(chan struct{})
	go func() {
		defer close(renewed)
		r.keepAlive(fnCtx, held, token, done, cancel)
	}()

	err = fn(fnCtx)
	close(done)
	<-renewed

	if err == nil && errors.Is(context.Cause(fnCtx), ErrLockLost) {
		return ErrLockLost
	}
	return err
}

// keepAlive продлевает ключи до закрытия done. Потерянный ключ отменяет контекст fn.
func (r *Redis) keepAlive(ctx context.Context, keys []string, token string, done <-chan struct{}, cancel context.CancelCauseFunc) {
	ticker := time.NewTicker(renewInterval(r.ttl))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, k := range keys {
				n, err := renewScript.Run(ctx, r.client, []string{k}, token, r.ttl.Milliseconds()).Int64()
				if err != nil && ctx.Err() != nil {
					return
				}
				if err != nil || n == 0 {
					cancel(fmt.Errorf("renew %s: %w", k, ErrLockLost))
					return
				}
			}
		}
	}
}

func renewInterval(ttl time.Duration) time.Duration {
	d := ttl / 3
	if d < 10*time.Millisecond {
		d = 10 * time.Millisecond
	}
	return d
}

func (r *Redis) acquire(ctx context.Context, key, token string) error {
	backoff := retry.WithMaxDuration(r.ttl, retry.NewConstant(r.poll))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		if !ok {
			return retry.RetryableError(ErrLockTimeout)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("acquire %s: %w", key, err)
	}
	return nil
}
