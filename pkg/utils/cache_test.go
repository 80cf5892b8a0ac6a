package utils

import (
	"testing"
	"time"
)

func TestStateCache_SetGetDelete(t *testing.T) {
	c := NewStateCache()

	c.Set("state_1", "verifier:cli_1")
	val, ok := c.Get("state_1")
	if !ok || val != "verifier:cli_1" {
		t.Fatalf("Get = (%s, %v)", val, ok)
	}

	c.Delete("state_1")
	if _, ok := c.Get("state_1"); ok {
		t.Error("删除后仍能读到值")
	}
}

func TestStateCache_Sweep(t *testing.T) {
	c := NewStateCache()
	c.Set("fresh", "v1")

	// 手工塞入一个已过期条目
	c.items.Store("stale", cacheItem{value: "v0", expiration: time.Now().Add(-time.Minute).UnixNano()})

	if removed := c.Sweep(); removed != 1 {
		t.Errorf("Sweep 清理数 = %d, want 1", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("未过期条目被误删")
	}
}
