package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mock-interview-service/internal/domain"
)

// BankLoader fetches question banks from a backing store (e.g., Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, role string) (domain.Bank, error)
}

// BankRepository caches question banks in Redis and falls back to a loader
// on cache miss. Banks are stored as: SET bank:{role} {json} EX ttl.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, role string) (domain.Bank, error) {
	if b, ok := r.cached(ctx, role); ok {
		return b, nil
	}

	result, err, _ := r.sf.Do(role, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if b, ok := r.cached(ctx, role); ok {
			return b, nil
		}

		b, err := r.loader.LoadBank(ctx, role)
		if err != nil {
			return domain.Bank{}, err
		}

		data, err := json.Marshal(b)
		if err != nil {
			return domain.Bank{}, fmt.Errorf("marshal bank: %w", err)
		}
		_ = r.client.Set(ctx, r.key(role), data, r.ttlWithJitter()).Err()
		return b, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) cached(ctx context.Context, role string) (domain.Bank, bool) {
	raw, err := r.client.Get(ctx, r.key(role)).Bytes()
	if err != nil {
		// Both a miss and cache trouble fall through to the loader.
		return domain.Bank{}, false
	}
	var b domain.Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return domain.Bank{}, false
	}
	return b, true
}

func (r *BankRepository) key(role string) string {
	return "bank:" + role
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
