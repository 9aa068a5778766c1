package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "flashlearn.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	// Verify tasks database was created alongside the main one
	tasksDBPath := filepath.Join(tmpDir, "flashlearn-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "flashlearn.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type countingCleaner struct {
	deleted int64
	calls   chan struct{}
}

func (c *countingCleaner) DeleteOrphanCards() (int64, error) {
	c.calls <- struct{}{}
	return c.deleted, nil
}

func TestCleanupOrphanCardsTask(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "flashlearn.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	cleaner := &countingCleaner{deleted: 4, calls: make(chan struct{}, 1)}
	client.Register(NewCleanupOrphanCardsQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(CleanupOrphanCardsTask{}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case <-cleaner.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}
}

func TestCleanupOrphanCardsTaskConfig(t *testing.T) {
	cfg := CleanupOrphanCardsTask{}.Config()

	assert.Equal(t, "cleanup_orphan_cards", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupProcessorWithoutCleaner(t *testing.T) {
	processor := CleanupOrphanCardsProcessor(nil)
	err := processor(context.Background(), CleanupOrphanCardsTask{})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestTasksDatabasePath(t *testing.T) {
	assert.Equal(t, "./data/app-tasks.db", tasksDatabasePath("./data/app.db"))
	assert.Equal(t, "flashlearn-tasks.db", tasksDatabasePath("flashlearn.db"))
}

var _ backlite.Task = CleanupOrphanCardsTask{}
