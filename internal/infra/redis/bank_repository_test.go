package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mock-interview-service/internal/bank"
	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(bank.DefaultCatalog()),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	first, err := repo.GetBank(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:Backend Developer") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call must hit the redis cache, loader not incremented, and the
	// round-tripped bank must match.
	second, err := repo.GetBank(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(second.Questions) != len(first.Questions) {
		t.Fatalf("cache round-trip changed the bank: %d vs %d questions", len(second.Questions), len(first.Questions))
	}
}

func TestBankRepositoryPropagatesLoaderErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewBankRepository(client, memory.NewStaticBankLoader(nil), time.Minute)

	if _, err := repo.GetBank(context.Background(), "anything"); err != domain.ErrBankNotFound {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, role string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, role)
}
