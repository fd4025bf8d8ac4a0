package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"campus-portal-api/internal/model"
)

func exercise(t *testing.T, c Notifications, key string) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	list := []model.Notification{{ID: "1", Title: "hello", TargetRoles: []model.Role{model.RoleStudent}}}
	if err := c.Set(ctx, key, list); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Title != "hello" || got[0].TargetRoles[0] != model.RoleStudent {
		t.Fatalf("unexpected list: %+v", got)
	}
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatal("entry survived flush")
	}
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory(), "student:s1")
}

func TestMemoryCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	list := []model.Notification{{ID: "1", TargetRoles: []model.Role{model.RoleStudent}}}
	m.Set(ctx, "k", list)
	list[0].TargetRoles[0] = model.RoleAdmin

	got, _, _ := m.Get(ctx, "k")
	if got[0].TargetRoles[0] != model.RoleStudent {
		t.Fatal("cache aliased the caller's slice")
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	exercise(t, NewRedis(client, time.Minute), "student:"+uuid.NewString())
}
