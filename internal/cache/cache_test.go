package cache

import (
	"testing"

	"github.com/platefeed/platefeed-sync/internal/types"
)

func key(owner, date string) types.CollectionKey {
	return types.CollectionKey{OwnerID: owner, Date: date}
}

func TestCache_PutGetReturnsCopy(t *testing.T) {
	c := New()
	k := key("u1", "2026-08-28")
	c.Put(k, []types.Record{{ID: "a", Favorite: false}})

	got, ok := c.Get(k)
	if !ok || len(got) != 1 {
		t.Fatalf("Get = (%v, %v)", got, ok)
	}
	got[0].Favorite = true

	again, _ := c.Get(k)
	if again[0].Favorite {
		t.Fatal("mutating a returned batch must not affect the cached entry")
	}
}

func TestCache_Miss(t *testing.T) {
	c := New()
	if _, ok := c.Get(key("u1", "")); ok {
		t.Fatal("empty cache should miss")
	}
}

func TestCache_InvalidateOwner(t *testing.T) {
	c := New()
	c.Put(key("u1", ""), []types.Record{{ID: "a"}})
	c.Put(key("u1", "2026-08-28"), []types.Record{{ID: "b"}})
	c.Put(key("u10", "2026-08-28"), []types.Record{{ID: "c"}})

	c.Invalidate("u1")

	if _, ok := c.Get(key("u1", "")); ok {
		t.Fatal("flat entry should be invalidated")
	}
	if _, ok := c.Get(key("u1", "2026-08-28")); ok {
		t.Fatal("date entry should be invalidated")
	}
	// "u10" shares the "u1" prefix but is a different owner.
	if _, ok := c.Get(key("u10", "2026-08-28")); !ok {
		t.Fatal("other owners must be untouched")
	}
}

func TestCache_InvalidateKey(t *testing.T) {
	c := New()
	c.Put(key("u1", "2026-08-27"), []types.Record{{ID: "a"}})
	c.Put(key("u1", "2026-08-28"), []types.Record{{ID: "b"}})

	c.InvalidateKey(key("u1", "2026-08-27"))

	if _, ok := c.Get(key("u1", "2026-08-27")); ok {
		t.Fatal("target entry should be gone")
	}
	if _, ok := c.Get(key("u1", "2026-08-28")); !ok {
		t.Fatal("sibling entry should remain")
	}
}
