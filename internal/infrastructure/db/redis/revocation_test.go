package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeKV struct {
	keys   map[string]time.Duration
	failOn error
}

func newFakeKV() *fakeKV {
	return &fakeKV{keys: make(map[string]time.Duration)}
}

func (f *fakeKV) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failOn != nil {
		return redis.NewStatusResult("", f.failOn)
	}
	f.keys[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.failOn != nil {
		return redis.NewIntResult(0, f.failOn)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRevocationList(t *testing.T) {
	kv := newFakeKV()
	list := NewRevocationList(kv)
	ctx := context.Background()

	revoked, err := list.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if revoked {
		t.Fatalf("expected jti-1 not to be revoked yet")
	}

	if err := list.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if ttl := kv.keys["revoked:jti-1"]; ttl != time.Hour {
		t.Fatalf("expected key with 1h ttl, got %v", ttl)
	}

	revoked, err = list.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if !revoked {
		t.Fatalf("expected jti-1 to be revoked")
	}
}

func TestRevocationList_Errors(t *testing.T) {
	kv := newFakeKV()
	kv.failOn = errors.New("connection refused")
	list := NewRevocationList(kv)

	if err := list.Revoke(context.Background(), "jti", time.Minute); err == nil {
		t.Fatalf("expected Revoke error")
	}
	if _, err := list.IsRevoked(context.Background(), "jti"); err == nil {
		t.Fatalf("expected IsRevoked error")
	}
}
