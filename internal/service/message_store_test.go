package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/repository"
)

func storedMessages() []model.Message {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	return []model.Message{
		{ID: "a", Name: "Alice", Status: model.StatusUnread, CreatedAt: base},
		{ID: "b", Name: "Bob", Status: model.StatusRead, CreatedAt: base.Add(-time.Hour)},
		{ID: "c", Name: "Carol", Status: model.StatusReplied, CreatedAt: base.Add(-2 * time.Hour)},
	}
}

func loadedStore(t *testing.T, repo *mockMessageRepository) *MessageStore {
	t.Helper()
	repo.listFunc = func(ctx context.Context) ([]model.Message, error) {
		return storedMessages(), nil
	}
	store := NewMessageStore(repo)
	_, err := store.List(context.Background())
	require.NoError(t, err)
	return store
}

func TestMessageStore_List_ReturnsRepositoryOrder(t *testing.T) {
	store := loadedStore(t, &mockMessageRepository{})
	got := store.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestMessageStore_List_FailureKeepsLastKnown(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)

	repo.listFunc = func(ctx context.Context) ([]model.Message, error) {
		return nil, errors.New("connection reset")
	}
	got, err := store.List(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Len(t, got, 3)
	assert.Equal(t, storedMessages(), got)
}

func TestMessageStore_List_FirstLoadFailureIsEmpty(t *testing.T) {
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return nil, errors.New("down")
		},
	}
	got, err := NewMessageStore(repo).List(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMessageStore_List_FirstLoadFailureUsesSnapshot(t *testing.T) {
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return nil, errors.New("down")
		},
	}
	cache := &mockSnapshotCache{saved: storedMessages()[:2]}
	got, err := NewMessageStoreWithCache(repo, cache).List(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Len(t, got, 2)
}

func TestMessageStore_List_SnapshotMissing(t *testing.T) {
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return nil, errors.New("down")
		},
	}
	cache := &mockSnapshotCache{loadFunc: func(ctx context.Context) ([]model.Message, error) {
		return nil, repository.ErrNotFound
	}}
	got, err := NewMessageStoreWithCache(repo, cache).List(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Empty(t, got)
}

func TestMessageStore_List_SavesSnapshot(t *testing.T) {
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return storedMessages(), nil
		},
	}
	cache := &mockSnapshotCache{saveErr: errors.New("redis down")}
	_, err := NewMessageStoreWithCache(repo, cache).List(context.Background())

	require.NoError(t, err, "cache failures must not fail the load")
	assert.Equal(t, 1, cache.saves)
	assert.Len(t, cache.saved, 3)
}

func TestMessageStore_UpdateStatus_ReplacesInMemoryCopy(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)
	when := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	repo.updateStatusFunc = func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
		return storedRow(id, status, when), nil
	}

	got, err := store.UpdateStatus(context.Background(), "a", model.StatusRead)
	require.NoError(t, err)

	assert.Equal(t, model.StatusRead, got.Status)
	assert.Equal(t, "Alice", got.Name)
	assert.True(t, got.UpdatedAt.Equal(when))
	assert.Equal(t, model.StatusRead, store.Snapshot()[0].Status)
}

func TestMessageStore_UpdateStatus_FailureLeavesListUnchanged(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)
	before := store.Snapshot()
	repo.updateStatusFunc = func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
		return model.Message{}, errors.New("write timeout")
	}

	_, err := store.UpdateStatus(context.Background(), "a", model.StatusReplied)

	assert.ErrorIs(t, err, ErrUpdateFailed)
	assert.Equal(t, before, store.Snapshot())
}

func TestMessageStore_UpdateStatus_NotFound(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)
	repo.updateStatusFunc = func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
		return model.Message{}, repository.ErrNotFound
	}

	_, err := store.UpdateStatus(context.Background(), "zzz", model.StatusRead)
	assert.ErrorIs(t, err, ErrUpdateFailed)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMessageStore_UpdateStatus_InvalidStatus(t *testing.T) {
	called := false
	repo := &mockMessageRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
			called = true
			return storedRow(id, status, time.Now()), nil
		},
	}
	_, err := NewMessageStore(repo).UpdateStatus(context.Background(), "a", model.MessageStatus("archived"))
	assert.ErrorIs(t, err, ErrUpdateFailed)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	assert.False(t, called)
}

func TestMessageStore_UpdateStatus_StaleCompletionDiscarded(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)

	firstCalled := make(chan struct{})
	releaseFirst := make(chan struct{})
	repo.updateStatusFunc = func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
		if status == model.StatusRead {
			close(firstCalled)
			<-releaseFirst
		}
		return storedRow(id, status, time.Now()), nil
	}

	var wg sync.WaitGroup
	var staleResult model.Message
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleResult, staleErr = store.UpdateStatus(context.Background(), "a", model.StatusRead)
	}()
	<-firstCalled

	newer, err := store.UpdateStatus(context.Background(), "a", model.StatusReplied)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReplied, newer.Status)

	close(releaseFirst)
	wg.Wait()

	require.NoError(t, staleErr)
	assert.Equal(t, model.StatusReplied, staleResult.Status, "stale completion reports the authoritative status")
	assert.Equal(t, model.StatusReplied, store.Snapshot()[0].Status)
}

func TestMessageStore_UpdateStatus_DifferentIDsDoNotInterfere(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := store.UpdateStatus(context.Background(), id, model.StatusReplied)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	for _, m := range store.Snapshot() {
		assert.Equal(t, model.StatusReplied, m.Status, m.ID)
	}
}

func TestMessageStore_List_KeepsNewerUpdate(t *testing.T) {
	repo := &mockMessageRepository{}
	store := loadedStore(t, repo)

	listCalled := make(chan struct{})
	releaseList := make(chan struct{})
	repo.listFunc = func(ctx context.Context) ([]model.Message, error) {
		close(listCalled)
		<-releaseList
		return storedMessages(), nil
	}

	done := make(chan []model.Message)
	go func() {
		got, _ := store.List(context.Background())
		done <- got
	}()
	<-listCalled

	_, err := store.UpdateStatus(context.Background(), "a", model.StatusReplied)
	require.NoError(t, err)

	close(releaseList)
	got := <-done
	assert.Equal(t, model.StatusReplied, got[0].Status)
}

func TestMessageStore_UpdateStatus_BeforeFirstLoadReturnsStoredRow(t *testing.T) {
	when := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	repo := &mockMessageRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
			return storedRow(id, status, when), nil
		},
	}
	store := NewMessageStore(repo)

	got, err := store.UpdateStatus(context.Background(), "b", model.StatusReplied)
	require.NoError(t, err)

	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, model.StatusReplied, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.UpdatedAt.Equal(when))
	assert.Empty(t, store.Snapshot(), "an update does not populate an unloaded list")
}

func TestMessageStore_UpdateStatus_StaleCompletionForUnlistedMessage(t *testing.T) {
	firstCalled := make(chan struct{})
	releaseFirst := make(chan struct{})
	repo := &mockMessageRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
			if status == model.StatusRead {
				close(firstCalled)
				<-releaseFirst
			}
			return storedRow(id, status, time.Now()), nil
		},
	}
	store := NewMessageStore(repo)

	var wg sync.WaitGroup
	var stale model.Message
	wg.Add(1)
	go func() {
		defer wg.Done()
		stale, _ = store.UpdateStatus(context.Background(), "a", model.StatusRead)
	}()
	<-firstCalled

	_, err := store.UpdateStatus(context.Background(), "a", model.StatusReplied)
	require.NoError(t, err)
	close(releaseFirst)
	wg.Wait()

	assert.Equal(t, "Alice", stale.Name)
	assert.Equal(t, model.StatusReplied, stale.Status)
}

func TestMessageStore_SaveSnapshot_IgnoresOlderVersion(t *testing.T) {
	cache := &mockSnapshotCache{}
	store := NewMessageStoreWithCache(&mockMessageRepository{}, cache)
	newer := storedMessages()
	older := storedMessages()[:1]

	store.saveSnapshot(context.Background(), newer, 2)
	store.saveSnapshot(context.Background(), older, 1)

	assert.Equal(t, 1, cache.saves)
	assert.Equal(t, newer, cache.saved)
}

func TestMessageStore_UpdateStatus_SnapshotsInIssueOrder(t *testing.T) {
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return storedMessages(), nil
		},
	}
	cache := &mockSnapshotCache{}
	store := NewMessageStoreWithCache(repo, cache)
	_, err := store.List(context.Background())
	require.NoError(t, err)

	_, err = store.UpdateStatus(context.Background(), "a", model.StatusRead)
	require.NoError(t, err)
	_, err = store.UpdateStatus(context.Background(), "b", model.StatusReplied)
	require.NoError(t, err)

	require.Len(t, cache.saved, 3)
	assert.Equal(t, model.StatusRead, cache.saved[0].Status)
	assert.Equal(t, model.StatusReplied, cache.saved[1].Status)
}
