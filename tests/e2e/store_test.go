//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/cache"
	"github.com/keepsake-io/keepsake/internal/record"
	"github.com/keepsake-io/keepsake/internal/store"
)

// Package-level shared state, set by TestMain and used by all subtests.
var (
	testLogger   *zap.Logger
	testStore    *store.Store
	testRedisURL string
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	testLogger, _ = zap.NewDevelopment()

	dsn, pgCleanup, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		os.Exit(1)
	}
	defer pgCleanup()

	redisURL, redisCleanup, err := startRedis(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer redisCleanup()
	testRedisURL = redisURL

	st, err := store.New(dsn, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}
	if err := st.Migrate(ctx, "../../migrations"); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	testStore = st
	defer st.Close()

	os.Exit(m.Run())
}

func mustCreateElder(t *testing.T, name string) int64 {
	t.Helper()
	id, err := testStore.CreateElder(context.Background(), &record.ElderProfile{Name: name})
	if err != nil {
		t.Fatalf("create elder: %v", err)
	}
	return id
}

func eventDate(y, m, d int) *time.Time {
	tm := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &tm
}

func TestElderLifecycle(t *testing.T) {
	ctx := context.Background()
	id := mustCreateElder(t, "Ana Horvat")

	elder, err := testStore.GetElder(ctx, id)
	if err != nil {
		t.Fatalf("get elder: %v", err)
	}
	if elder.Name != "Ana Horvat" {
		t.Errorf("name = %s", elder.Name)
	}

	elder.Hometown = "Split"
	if err := testStore.UpdateElder(ctx, elder); err != nil {
		t.Fatalf("update elder: %v", err)
	}
	updated, err := testStore.GetElder(ctx, id)
	if err != nil {
		t.Fatalf("get updated elder: %v", err)
	}
	if updated.Hometown != "Split" {
		t.Errorf("hometown = %s", updated.Hometown)
	}

	if err := testStore.DeleteElder(ctx, id); err != nil {
		t.Fatalf("delete elder: %v", err)
	}
	if _, err := testStore.GetElder(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get deleted elder err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	elderID := mustCreateElder(t, "Ivan Babic")

	conf := 0.92
	m := &record.MemoryRecord{
		ElderID:                 elderID,
		Title:                   "The old farmhouse",
		Transcription:           "we kept goats behind the house",
		Category:                "family",
		Era:                     "childhood",
		Decade:                  "1950s",
		DateOfEvent:             eventDate(1954, 6, 1),
		Location:                "Osijek",
		PeopleMentioned:         record.NameSet{"Marija", "Ivan"},
		Tags:                    record.TagList{"farm", "animals", "farm"},
		EmotionalTone:           "nostalgia",
		TranscriptionConfidence: &conf,
		DurationSeconds:         120,
	}
	id, err := testStore.CreateMemory(ctx, m)
	if err != nil {
		t.Fatalf("create memory: %v", err)
	}

	got, err := testStore.GetMemory(ctx, id)
	if err != nil {
		t.Fatalf("get memory: %v", err)
	}
	if got.Title != m.Title || got.Decade != "1950s" {
		t.Errorf("got = %+v", got)
	}
	if len(got.PeopleMentioned) != 2 || !got.PeopleMentioned.Contains("Marija") {
		t.Errorf("people = %v", got.PeopleMentioned)
	}
	// Duplicate tags survive the round trip; frequency counts need them.
	if len(got.Tags) != 3 {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.TranscriptionConfidence == nil || *got.TranscriptionConfidence != 0.92 {
		t.Errorf("confidence = %v", got.TranscriptionConfidence)
	}
	// Every Get registers a listen.
	if got.PlayCount != 1 {
		t.Errorf("play_count = %d, want 1", got.PlayCount)
	}
	again, err := testStore.GetMemory(ctx, id)
	if err != nil {
		t.Fatalf("get memory again: %v", err)
	}
	if again.PlayCount != 2 {
		t.Errorf("play_count = %d, want 2", again.PlayCount)
	}
}

func TestRecordShare(t *testing.T) {
	ctx := context.Background()
	elderID := mustCreateElder(t, "Mira Kovac")
	id, err := testStore.CreateMemory(ctx, &record.MemoryRecord{ElderID: elderID, Title: "The wedding"})
	if err != nil {
		t.Fatalf("create memory: %v", err)
	}

	count, err := testStore.RecordShare(ctx, id)
	if err != nil {
		t.Fatalf("record share: %v", err)
	}
	if count != 1 {
		t.Errorf("share_count = %d, want 1", count)
	}
}

func TestListByElderOrdersByEventDate(t *testing.T) {
	ctx := context.Background()
	elderID := mustCreateElder(t, "Petar Novak")

	if _, err := testStore.CreateMemory(ctx, &record.MemoryRecord{
		ElderID: elderID, Title: "Later", DateOfEvent: eventDate(1980, 1, 1),
	}); err != nil {
		t.Fatalf("create memory: %v", err)
	}
	if _, err := testStore.CreateMemory(ctx, &record.MemoryRecord{
		ElderID: elderID, Title: "Earlier", DateOfEvent: eventDate(1960, 1, 1),
	}); err != nil {
		t.Fatalf("create memory: %v", err)
	}
	if _, err := testStore.CreateMemory(ctx, &record.MemoryRecord{
		ElderID: elderID, Title: "Undated",
	}); err != nil {
		t.Fatalf("create memory: %v", err)
	}

	memories, err := testStore.ListByElder(ctx, elderID)
	if err != nil {
		t.Fatalf("list by elder: %v", err)
	}
	if len(memories) != 3 {
		t.Fatalf("len = %d, want 3", len(memories))
	}
	if memories[0].Title != "Earlier" || memories[1].Title != "Later" || memories[2].Title != "Undated" {
		t.Errorf("order = %s, %s, %s", memories[0].Title, memories[1].Title, memories[2].Title)
	}
}

func TestListMemoriesFilterAndTotal(t *testing.T) {
	ctx := context.Background()
	elderID := mustCreateElder(t, "Vera Juric")

	for _, category := range []string{"family", "family", "work"} {
		if _, err := testStore.CreateMemory(ctx, &record.MemoryRecord{ElderID: elderID, Title: "m", Category: category}); err != nil {
			t.Fatalf("create memory: %v", err)
		}
	}

	memories, total, err := testStore.ListMemories(ctx, store.MemoryFilter{ElderID: elderID, Category: "family"})
	if err != nil {
		t.Fatalf("list memories: %v", err)
	}
	if total != 2 || len(memories) != 2 {
		t.Errorf("total = %d len = %d, want 2/2", total, len(memories))
	}
}

func TestDeleteElderCascadesToMemories(t *testing.T) {
	ctx := context.Background()
	elderID := mustCreateElder(t, "Luka Maric")
	memID, err := testStore.CreateMemory(ctx, &record.MemoryRecord{ElderID: elderID, Title: "m"})
	if err != nil {
		t.Fatalf("create memory: %v", err)
	}

	if err := testStore.DeleteElder(ctx, elderID); err != nil {
		t.Fatalf("delete elder: %v", err)
	}
	if _, err := testStore.GetMemory(ctx, memID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("memory err = %v, want ErrNotFound after elder delete", err)
	}
}

func TestCacheRoundTripAndInvalidation(t *testing.T) {
	ctx := context.Background()
	c, err := cache.New(testRedisURL, time.Minute, testLogger)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	defer c.Close()

	key := cache.Key(7, "analytics")
	if _, err := c.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, key, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	payload, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(payload) != `{"ok":true}` {
		t.Errorf("payload = %s", payload)
	}

	if err := c.InvalidateElder(ctx, 7); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expected miss after invalidation, got %v", err)
	}
}
