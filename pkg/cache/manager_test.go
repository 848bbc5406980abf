package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local Redis and skips the test when none is
// running. Container-backed tests live in tests/integration.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewManager(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	manager := NewManager(client)
	if manager.redis != client {
		t.Error("Manager redis client not set correctly")
	}
	if manager.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", manager.ttl, DefaultTTL)
	}

	manager = NewManager(client, WithTTL(time.Hour))
	if manager.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", manager.ttl)
	}
}

func TestNewManager_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewManager should panic with nil redis client")
		}
	}()
	NewManager(nil)
}

func TestManager_SetAndGet(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()
	key := PlanKey{Site: "/srv/blog"}

	plan, err := PlanFromWindows(testWindows(t, "a", "b", "c"))
	if err != nil {
		t.Fatal(err)
	}
	if err := manager.Set(ctx, key, &plan); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got.Pages, plan.Pages) {
		t.Errorf("Pages mismatch: got %+v, want %+v", got.Pages, plan.Pages)
	}
}

func TestManager_Set_UsesTTL(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, WithTTL(time.Minute))
	ctx := context.Background()
	key := PlanKey{Site: "/srv/blog"}

	if err := manager.Set(ctx, key, &Plan{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	ttl, err := client.TTL(ctx, key.String()).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}

func TestManager_Get_CacheMiss(t *testing.T) {
	manager := NewManager(setupTestRedis(t))

	_, err := manager.Get(context.Background(), PlanKey{Site: "/nonexistent"})
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestManager_Get_InvalidPlan(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client)
	ctx := context.Background()
	key := PlanKey{Site: "/srv/blog"}

	if err := client.Set(ctx, key.String(), "not json", 0).Err(); err != nil {
		t.Fatal(err)
	}
	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("Expected ErrInvalidPlan, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()
	key := PlanKey{Site: "/srv/blog", Category: "go"}

	if err := manager.Set(ctx, key, &Plan{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after Delete, got %v", err)
	}
}

func TestManager_Set_NilPlan(t *testing.T) {
	manager := NewManager(setupTestRedis(t))

	if err := manager.Set(context.Background(), PlanKey{}, nil); err == nil {
		t.Error("Set with nil plan should return error")
	}
}

func TestManager_Sync(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	changed, removed, err := manager.Sync(ctx, "/srv/blog", "", testWindows(t, "a", "b", "c"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !reflect.DeepEqual(changed, []int{1, 2}) {
		t.Errorf("first Sync changed = %v, want [1 2]", changed)
	}
	if removed != nil {
		t.Errorf("first Sync removed = %v, want none", removed)
	}

	changed, _, err = manager.Sync(ctx, "/srv/blog", "", testWindows(t, "a", "b", "c"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("unchanged Sync changed = %v, want none", changed)
	}

	changed, _, err = manager.Sync(ctx, "/srv/blog", "", testWindows(t, "a", "b", "x"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !reflect.DeepEqual(changed, []int{2}) {
		t.Errorf("changed = %v, want [2]", changed)
	}

	changed, removed, err = manager.Sync(ctx, "/srv/blog", "", testWindows(t, "a"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !reflect.DeepEqual(changed, []int{1}) {
		t.Errorf("shrunk Sync changed = %v, want [1]", changed)
	}
	if !reflect.DeepEqual(removed, []int{2}) {
		t.Errorf("shrunk Sync removed = %v, want [2]", removed)
	}
}

func TestManager_Sync_CategoriesAreSeparate(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	if _, _, err := manager.Sync(ctx, "/srv/blog", "go", testWindows(t, "a")); err != nil {
		t.Fatal(err)
	}
	changed, _, err := manager.Sync(ctx, "/srv/blog", "web", testWindows(t, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(changed, []int{1}) {
		t.Errorf("changed = %v, want [1]", changed)
	}
}

func TestManager_Diff_RedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	manager := NewManager(client)

	_, err := manager.Diff(context.Background(), PlanKey{Site: "/srv"}, Plan{})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrCacheMiss) {
		t.Error("connection failure must not look like a miss")
	}
}
