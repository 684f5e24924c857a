package swrcache

import (
	"context"
	"testing"
	"time"
)

func TestGetOrFetch_FreshCache(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: 5 * time.Minute, MaxStale: time.Hour})

	key := "employees_list"
	if err := writeEntry(cache, key, Entry[string]{Data: "cached", FetchedAt: time.Now().Add(-time.Minute)}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}

	called := 0
	fetch := func(ctx context.Context) (string, error) {
		called++
		return "fresh", nil
	}

	got, err := GetOrFetch(cache, context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch error: %v", err)
	}
	if got != "cached" {
		t.Fatalf("got %q, want %q", got, "cached")
	}
	if called != 0 {
		t.Fatalf("fetch called %d times, want 0", called)
	}
}

func TestGetOrFetch_StaleCacheRevalidates(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: 5 * time.Minute, MaxStale: time.Hour})

	key := "employees_detail_emp-1"
	if err := writeEntry(cache, key, Entry[string]{Data: "cached", FetchedAt: time.Now().Add(-10 * time.Minute)}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}

	called := make(chan struct{}, 1)
	fetch := func(ctx context.Context) (string, error) {
		called <- struct{}{}
		return "fresh", nil
	}

	got, err := GetOrFetch(cache, context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch error: %v", err)
	}
	if got != "cached" {
		t.Fatalf("got %q, want %q", got, "cached")
	}

	select {
	case <-called:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected background revalidation")
	}

	deadline := time.Now().Add(750 * time.Millisecond)
	for time.Now().Before(deadline) {
		entry, ok, _ := readEntry[string](cache, key)
		if ok && entry.Data == "fresh" {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	entry, ok, _ := readEntry[string](cache, key)
	if !ok || entry.Data != "fresh" {
		t.Fatalf("expected cache to be refreshed, got ok=%v data=%q", ok, entry.Data)
	}
}

func TestGetOrFetch_ExpiredCacheFetchesSync(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: 5 * time.Minute, MaxStale: time.Hour})

	key := "employees_list"
	if err := writeEntry(cache, key, Entry[string]{Data: "cached", FetchedAt: time.Now().Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}

	called := 0
	fetch := func(ctx context.Context) (string, error) {
		called++
		return "fresh", nil
	}

	got, err := GetOrFetch(cache, context.Background(), key, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch error: %v", err)
	}
	if got != "fresh" {
		t.Fatalf("got %q, want %q", got, "fresh")
	}
	if called != 1 {
		t.Fatalf("fetch called %d times, want 1", called)
	}
}

func TestGetOrFetch_MissFetchesSync(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: 5 * time.Minute, MaxStale: time.Hour})

	called := 0
	fetch := func(ctx context.Context) (string, error) {
		called++
		return "fresh", nil
	}

	got, err := GetOrFetch(cache, context.Background(), "missing", fetch)
	if err != nil {
		t.Fatalf("GetOrFetch error: %v", err)
	}
	if got != "fresh" {
		t.Fatalf("got %q, want %q", got, "fresh")
	}
	if called != 1 {
		t.Fatalf("fetch called %d times, want 1", called)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: 5 * time.Minute, MaxStale: time.Hour})

	if err := writeEntry(cache, "employees_list", Entry[string]{Data: "a", FetchedAt: time.Now()}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}
	if err := writeEntry(cache, "employees_detail_emp-1", Entry[string]{Data: "b", FetchedAt: time.Now()}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}
	if err := writeEntry(cache, "audit_recent", Entry[string]{Data: "c", FetchedAt: time.Now()}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}

	if err := cache.InvalidatePrefix("employees_"); err != nil {
		t.Fatalf("InvalidatePrefix error: %v", err)
	}

	if _, ok, _ := readEntry[string](cache, "employees_list"); ok {
		t.Fatal("expected employees_list to be removed")
	}
	if _, ok, _ := readEntry[string](cache, "employees_detail_emp-1"); ok {
		t.Fatal("expected employees_detail_emp-1 to be removed")
	}
	if _, ok, _ := readEntry[string](cache, "audit_recent"); !ok {
		t.Fatal("expected audit_recent to remain")
	}
}

func TestGetOrFetch_StaleRevalidatesOncePerKey(t *testing.T) {
	dir := t.TempDir()
	cache := NewWithPolicy(dir, Policy{FreshTTL: time.Minute, MaxStale: time.Hour})

	key := "employees_list"
	if err := writeEntry(cache, key, Entry[string]{Data: "cached", FetchedAt: time.Now().Add(-10 * time.Minute)}); err != nil {
		t.Fatalf("writeEntry error: %v", err)
	}

	release := make(chan struct{})
	calls := make(chan struct{}, 10)
	fetch := func(ctx context.Context) (string, error) {
		calls <- struct{}{}
		<-release
		return "fresh", nil
	}

	for range 3 {
		got, err := GetOrFetch(cache, context.Background(), key, fetch)
		if err != nil || got != "cached" {
			t.Fatalf("GetOrFetch = %q, %v; want cached", got, err)
		}
	}

	select {
	case <-calls:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected one background revalidation")
	}
	close(release)

	select {
	case <-calls:
		t.Fatal("expected revalidation to be deduplicated")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNilCacheAlwaysFetches(t *testing.T) {
	var cache *Cache
	called := 0
	got, err := GetOrFetch(cache, context.Background(), "employees_list", func(context.Context) (int, error) {
		called++
		return 7, nil
	})
	if err != nil || got != 7 || called != 1 {
		t.Fatalf("got %d, %v after %d calls", got, err, called)
	}
	if err := cache.Invalidate("employees_list"); err != nil {
		t.Fatalf("Invalidate on nil cache: %v", err)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.FreshTTL != time.Minute || p.MaxStale != time.Hour {
		t.Errorf("unexpected default policy: %+v", p)
	}
}
