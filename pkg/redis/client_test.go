package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := NewFromAddr(srv.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestSetGetDel(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := client.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v" {
		t.Fatalf("expected v, got %q", got)
	}

	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := client.Get(ctx, "k"); err == nil {
		t.Fatal("expected miss after delete")
	}
}

func TestSetNXOnlyFirstWins(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "lock", "a", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first SetNX should win: ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, "lock", "b", time.Minute)
	if err != nil {
		t.Fatalf("second SetNX errored: %v", err)
	}
	if ok {
		t.Fatal("second SetNX should lose")
	}
}

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	count, err := client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil {
		t.Fatalf("IncrWithTTL failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}
	if srv.TTL("counter") <= 0 {
		t.Fatal("expected TTL on first increment")
	}

	count, err = client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil {
		t.Fatalf("second increment failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestKeyBuilders(t *testing.T) {
	client, _ := newTestClient(t)
	if got := client.RateLimitKey("login:ip:1.2.3.4"); got != "rh:rate_limit:login:ip:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := client.AccessSessionKey("abc"); got != "rh:session:access:abc" {
		t.Fatalf("unexpected session key %q", got)
	}
}
