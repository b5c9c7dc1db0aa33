package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/ports"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

const keyPrefix = "eft:lock:"

// RedisOptions tunes distributed lock acquisition.
type RedisOptions struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// DefaultRedisOptions returns the options used when none are given.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{Expiry: 10 * time.Second, Tries: 32, RetryDelay: 100 * time.Millisecond}
}

// RedisLocker serialises callers across service instances using redsync.
type RedisLocker struct {
	rs   *redsync.Redsync
	opts RedisOptions
}

// NewRedisLocker creates a locker on client. Zero option fields take defaults.
func NewRedisLocker(client goredislib.UniversalClient, opts RedisOptions) *RedisLocker {
	def := DefaultRedisOptions()
	if opts.Expiry <= 0 {
		opts.Expiry = def.Expiry
	}
	if opts.Tries <= 0 {
		opts.Tries = def.Tries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = def.RetryDelay
	}
	return &RedisLocker{rs: redsync.New(goredis.NewPool(client)), opts: opts}
}

var _ ports.BatchLocker = (*RedisLocker)(nil)

// WithLock runs fn while holding the distributed lock for key.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	name := keyPrefix + key

	mutex := l.rs.NewMutex(
		name,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		if isContention(err) || ctx.Err() != nil {
			logger.Warn("Batch lock busy", slog.String("lock_key", name), slog.String("error", err.Error()))
			return fmt.Errorf("%w: lock %s is held by another request", apperrors.ErrConflict, key)
		}
		logger.Error("Failed to acquire batch lock", slog.String("lock_key", name), slog.String("error", err.Error()))
		return apperrors.NewAppError(500, "failed to acquire batch lock", err)
	}

	defer func() {
		// Release with a fresh context so a cancelled request still frees the lock.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(unlockCtx); !ok || err != nil {
			logger.Error("Failed to release batch lock", slog.String("lock_key", name), slog.Bool("unlock_ok", ok), slog.Any("error", err))
		}
	}()

	return fn(ctx)
}

// isContention separates "someone else holds it" from transport failures.
func isContention(err error) bool {
	return errors.Is(err, redsync.ErrFailed) || strings.Contains(err.Error(), "lock already taken")
}
