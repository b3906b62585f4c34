package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ocr-service/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreatesIdle(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, s.State)

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, s, again)
}

func TestMemorySessionRepository_SaveAndDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s := entity.NewSession(2, 20)
	require.NoError(t, s.SelectFile("a.png", []byte("x")))
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateFileSelected, got.State)

	require.NoError(t, repo.Delete(ctx, 2))
	require.Equal(t, 0, repo.Len())
}

func TestMemorySessionRepository_ConcurrentGet(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Get(ctx, 7, 70)
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, repo.Len())
}
