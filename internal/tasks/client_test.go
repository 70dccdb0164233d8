package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "bookstore.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()

	client, err := NewClient(filepath.Join(tmpDir, "bookstore.db"), DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "bookstore-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "bookstore-tasks.db"), TasksDBPath(filepath.Join("data", "bookstore.db")))
	assert.Equal(t, filepath.Join("data", "store-tasks.db"), TasksDBPath(filepath.Join("data", "store")))
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client := newTestClient(t)
	assert.True(t, client.Stop(context.Background()))
}

type fakeCleaner struct {
	mu        sync.Mutex
	retention time.Duration
	deleted   int64
	err       error
	calls     chan struct{}
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.mu.Lock()
	f.retention = retention
	f.mu.Unlock()
	if f.calls != nil {
		f.calls <- struct{}{}
	}
	return f.deleted, f.err
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the task retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 4}
		err := CleanupAuditEventsProcessor(cleaner)(ctx, CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("falls back to the default retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		require.NoError(t, CleanupAuditEventsProcessor(cleaner)(ctx, CleanupAuditEventsTask{}))
		assert.Equal(t, defaultRetentionDays*24*time.Hour, cleaner.retention)
	})

	t.Run("propagates cleaner errors", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("disk full")}
		err := CleanupAuditEventsProcessor(cleaner)(ctx, CleanupAuditEventsTask{RetentionDays: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("nil cleaner", func(t *testing.T) {
		assert.Error(t, CleanupAuditEventsProcessor(nil)(ctx, CleanupAuditEventsTask{}))
	})
}

func TestCleanupAuditEventsTask_RunsThroughQueue(t *testing.T) {
	client := newTestClient(t)
	cleaner := &fakeCleaner{calls: make(chan struct{}, 1)}
	client.Register(NewCleanupAuditEventsQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(CleanupAuditEventsTask{RetentionDays: 14}).Save()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	select {
	case <-cleaner.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}

	cleaner.mu.Lock()
	defer cleaner.mu.Unlock()
	assert.Equal(t, 14*24*time.Hour, cleaner.retention)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
}

func TestConfigFrom(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFrom(config.Tasks{}))

	cfg := ConfigFrom(config.Tasks{Workers: 4, ReleaseAfter: time.Minute})
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

var _ backlite.Task = CleanupAuditEventsTask{}
