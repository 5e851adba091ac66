package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, prefix), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t, "hierarchy:")
	ctx := context.Background()

	type entry struct {
		ID     uint   `json:"id"`
		Nombre string `json:"nombre"`
	}

	value := []entry{{ID: 1, Nombre: "Primero"}, {ID: 2, Nombre: "Segundo"}}
	if err := helper.Set(ctx, "grados:list", value, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got []entry
	if err := helper.Get(ctx, "grados:list", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[0].Nombre != "Primero" {
		t.Errorf("Unexpected cached value: %+v", got)
	}

	var missing []entry
	if err := helper.Get(ctx, "grados:otro", &missing); err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t, "hierarchy:")
	ctx := context.Background()

	if err := helper.Set(ctx, "grados:list", []string{"Primero"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A warm cache must answer without calling the fetch function.
	var got []string
	err := helper.CacheOrExecute(ctx, "grados:list", &got, time.Minute, func() (interface{}, error) {
		t.Fatal("fetch function called on cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if len(got) != 1 || got[0] != "Primero" {
		t.Errorf("Unexpected value: %v", got)
	}

	// A cold key falls through to the fetch function.
	var fetched []string
	called := false
	err = helper.CacheOrExecute(ctx, "grados:frio", &fetched, time.Minute, func() (interface{}, error) {
		called = true
		return []string{"Segundo"}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if !called {
		t.Error("Expected fetch function to run on cache miss")
	}
	if len(fetched) != 1 || fetched[0] != "Segundo" {
		t.Errorf("Unexpected value: %v", fetched)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t, "hierarchy:")
	ctx := context.Background()

	if err := helper.Set(ctx, "grados:list", "a", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "areas:list", "b", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "grados:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("hierarchy:grados:list") {
		t.Error("Expected grados keys to be invalidated")
	}
	if !mr.Exists("hierarchy:areas:list") {
		t.Error("Areas keys must survive a grados invalidation")
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	var dest string
	if err := helper.Get(ctx, "k", &dest); err != ErrCacheNotAvailable {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "*"); err != nil {
		t.Errorf("InvalidatePattern with nil client should be a no-op, got %v", err)
	}

	// CacheOrExecute must still serve the fetched value.
	var got string
	err := helper.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		return "directo", nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if got != "directo" {
		t.Errorf("Expected fetched value, got %q", got)
	}
}
