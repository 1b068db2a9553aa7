package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/foundryrelay/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.TaskService = (*InMemoryService)(nil)

func newTestService() *InMemoryService {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	n := 0
	return NewInMemoryService(func(o *Options) {
		o.Now = func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			n++
			return base.Add(time.Duration(n) * time.Second)
		}
	})
}

func TestInMemoryService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, "  buy milk ")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.Completed)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestInMemoryService_CreateEmptyTitle(t *testing.T) {
	_, err := newTestService().Create(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestInMemoryService_DuplicateID(t *testing.T) {
	svc := NewInMemoryService(func(o *Options) { o.NewID = func() string { return "fixed" } })
	_, err := svc.Create(context.Background(), "a")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "b")
	assert.Error(t, err)
}

func TestInMemoryService_ListOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, fmt.Sprintf("task %d", i))
		require.NoError(t, err)
	}

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "task 0", tasks[0].Title)
	assert.Equal(t, "task 2", tasks[2].Title)
}

func TestInMemoryService_Complete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	created, err := svc.Create(ctx, "write report")
	require.NoError(t, err)

	done, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.True(t, done.UpdatedAt.After(created.UpdatedAt))

	again, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, done.UpdatedAt, again.UpdatedAt)

	_, err = svc.Complete(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	created, err := svc.Create(ctx, "temp")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestInMemoryService_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, fmt.Sprintf("t%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 50)
}
