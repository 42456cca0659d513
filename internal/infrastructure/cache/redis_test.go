package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	ctx := context.Background()
	for name, r := range map[string]*Redis{"nil": nil, "no client": NewRedisWithClient(nil, 0, nil)} {
		t.Run(name, func(t *testing.T) {
			var out map[string]int
			hit, err := r.GetJSON(ctx, "k", &out)
			if hit || err != nil {
				t.Fatalf("GetJSON = %v, %v", hit, err)
			}
			if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
				t.Fatalf("SetJSON: %v", err)
			}
			if err := r.DeleteByPattern(ctx, "matching:*"); err != nil {
				t.Fatalf("DeleteByPattern: %v", err)
			}
			if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("Ping = %v, want ErrUnavailable", err)
			}
			ok, err := r.SetIfNotExists(ctx, "lock", "1", time.Minute)
			if !ok || err != nil {
				t.Fatalf("SetIfNotExists = %v, %v", ok, err)
			}
			if err := r.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
		})
	}
}
