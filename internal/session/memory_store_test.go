package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/internal/clock"
)

func testClockAt(t *testing.T, at time.Time) *clock.Clock {
	t.Helper()
	return clock.NewAt(func() time.Time { return at })
}

func cdmx(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(clock.Zone)
	require.NoError(t, err)
	return loc
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(clock.New())

	s := Session{
		SessionID: "sid-1",
		Email:     "a@b.com",
		Nickname:  "bob",
		Status:    StatusActive,
	}

	require.NoError(t, store.Create(ctx, s))

	got, err := store.FindByID(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, s, *got)

	// Duplicate ids are rejected.
	assert.ErrorIs(t, store.Create(ctx, s), ErrDuplicateID)

	// Save upserts.
	s.Nickname = "robert"
	require.NoError(t, store.Save(ctx, s))
	got, err = store.FindByID(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "robert", got.Nickname)

	_, err = store.FindByID(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreFindAllFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(clock.New())

	require.NoError(t, store.Create(ctx, Session{SessionID: "a", Status: StatusActive}))
	require.NoError(t, store.Create(ctx, Session{SessionID: "b", Status: StatusInactive}))
	require.NoError(t, store.Create(ctx, Session{SessionID: "c", Status: StatusActive}))

	all, err := store.FindAll(ctx, StatusAny)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := store.FindAll(ctx, StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, s := range active {
		assert.Equal(t, StatusActive, s.Status)
	}
}

func TestMemoryStoreDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(clock.New())

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Create(ctx, Session{SessionID: fmt.Sprintf("s-%d", i)}))
	}

	count, err := store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	all, err := store.FindAll(ctx, StatusAny)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting an empty store reports zero, not an error.
	count, err = store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	loc := cdmx(t)

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, loc)
	store := NewMemoryStore(testClockAt(t, now))

	stale := Session{
		SessionID:    "stale",
		Status:       StatusActive,
		LastAccessed: now.Add(-10 * time.Minute).Format(clock.Layout),
	}
	fresh := Session{
		SessionID:    "fresh",
		Status:       StatusActive,
		LastAccessed: now.Add(-time.Minute).Format(clock.Layout),
	}
	unparseable := Session{
		SessionID:    "odd",
		Status:       StatusActive,
		LastAccessed: "garbage",
	}

	require.NoError(t, store.Create(ctx, stale))
	require.NoError(t, store.Create(ctx, fresh))
	require.NoError(t, store.Create(ctx, unparseable))

	store.sweep(5 * time.Minute)

	_, err := store.FindByID(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByID(ctx, "fresh")
	assert.NoError(t, err)

	// Records with unreadable timestamps are left alone.
	_, err = store.FindByID(ctx, "odd")
	assert.NoError(t, err)
}

func TestMemoryStoreSweeperLifecycle(t *testing.T) {
	store := NewMemoryStore(clock.New())

	store.StartSweeper(10*time.Millisecond, time.Minute)
	// Second start is a no-op.
	store.StartSweeper(10*time.Millisecond, time.Minute)

	time.Sleep(30 * time.Millisecond)

	require.NoError(t, store.Close())
	// Close is idempotent once stopped.
	require.NoError(t, store.Close())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(clock.New())
	store.StartSweeper(time.Millisecond, time.Nanosecond)
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("s-%d-%d", n, j)
				_ = store.Save(ctx, Session{SessionID: id, Status: StatusActive})
				_, _ = store.FindByID(ctx, id)
				_, _ = store.FindAll(ctx, StatusActive)
			}
		}(i)
	}
	wg.Wait()
}
