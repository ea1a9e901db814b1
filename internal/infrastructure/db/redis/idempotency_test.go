package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *IdempotencyStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewIdempotencyStore(client)
}

func TestIdempotencyStore_ReserveAndRemember(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()
	const redisKey = "idem:donation-request:a@x.com:k1"

	if _, reserved, err := store.Reserve(ctx, "a@x.com", "k1"); err != nil || !reserved {
		t.Fatalf("expected reservation, got reserved=%v err=%v", reserved, err)
	}
	if ttl := mr.TTL(redisKey); ttl != reservationTTL {
		t.Fatalf("expected reservation ttl %s, got %s", reservationTTL, ttl)
	}

	// A second caller with the same key sees the create in flight.
	id, reserved, err := store.Reserve(ctx, "a@x.com", "k1")
	if err != nil || reserved || id != "" {
		t.Fatalf("expected in-flight, got id=%q reserved=%v err=%v", id, reserved, err)
	}

	if err := store.Remember(ctx, "a@x.com", "k1", "req-1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	id, reserved, err = store.Reserve(ctx, "a@x.com", "k1")
	if err != nil || reserved || id != "req-1" {
		t.Fatalf("expected req-1, got id=%q reserved=%v err=%v", id, reserved, err)
	}
	if ttl := mr.TTL(redisKey); ttl != idempotencyTTL {
		t.Fatalf("expected ttl %s, got %s", idempotencyTTL, ttl)
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if _, reserved, _ := store.Reserve(ctx, "a@x.com", "k1"); !reserved {
		t.Fatal("expected reservation")
	}
	if err := store.Release(ctx, "a@x.com", "k1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, reserved, _ := store.Reserve(ctx, "a@x.com", "k1"); !reserved {
		t.Fatal("a released key must be claimable again")
	}
}

func TestIdempotencyStore_ScopedPerCaller(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if _, reserved, _ := store.Reserve(ctx, "a@x.com", "k1"); !reserved {
		t.Fatal("expected reservation")
	}
	if _, reserved, _ := store.Reserve(ctx, "b@x.com", "k1"); !reserved {
		t.Fatal("keys must not leak across callers")
	}
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	store.Reserve(ctx, "a@x.com", "k1")
	if err := store.Remember(ctx, "a@x.com", "k1", "req-1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	mr.FastForward(idempotencyTTL + time.Second)

	if _, reserved, _ := store.Reserve(ctx, "a@x.com", "k1"); !reserved {
		t.Fatal("expected key to expire")
	}
}

func TestIdempotencyStore_AbandonedReservationExpires(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	store.Reserve(ctx, "a@x.com", "k1")
	mr.FastForward(reservationTTL + time.Second)

	if _, reserved, _ := store.Reserve(ctx, "a@x.com", "k1"); !reserved {
		t.Fatal("expected stale reservation to lapse")
	}
}

func TestIdempotencyStore_ServerDown(t *testing.T) {
	mr, store := newTestStore(t)
	mr.Close()

	if _, _, err := store.Reserve(context.Background(), "a@x.com", "k1"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: time.Second}); err == nil {
		t.Fatal("expected ping failure")
	}
}
