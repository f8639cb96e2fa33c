package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/repository"
)

// MessageStore translates dashboard intents into MessageRepository calls and
// keeps the last successfully loaded list in memory.
//
// Every call is tagged with a sequence number when it is issued. A status
// update completion is applied only if no later update for the same id has
// already been applied, so replies that arrive out of order cannot roll a
// message back. The mutex is never held across a repository call.
type MessageStore struct {
	repo  repository.MessageRepository
	cache repository.SnapshotCache // optional

	mu       sync.Mutex
	messages []model.Message
	loaded   bool
	seq      uint64
	applied  map[string]appliedUpdate
	version  uint64

	// saveMu orders snapshot writes; savedVersion is the newest one written.
	saveMu       sync.Mutex
	savedVersion uint64
}

// appliedUpdate is the newest status update applied for one id.
type appliedUpdate struct {
	seq uint64
	msg model.Message
}

// NewMessageStore creates a MessageStore without a snapshot cache.
func NewMessageStore(repo repository.MessageRepository) *MessageStore {
	return NewMessageStoreWithCache(repo, nil)
}

// NewMessageStoreWithCache creates a MessageStore that mirrors every loaded
// list into cache and falls back to it when the first load fails.
func NewMessageStoreWithCache(repo repository.MessageRepository, cache repository.SnapshotCache) *MessageStore {
	return &MessageStore{
		repo:     repo,
		cache:    cache,
		messages: []model.Message{},
		applied:  make(map[string]appliedUpdate),
	}
}

// Snapshot returns the last known list without contacting the repository.
func (s *MessageStore) Snapshot() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMessages(s.messages)
}

// List fetches all messages, newest first. On failure it returns the last
// known list (empty before the first successful load) and an error wrapping
// ErrFetchFailed.
func (s *MessageStore) List(ctx context.Context) ([]model.Message, error) {
	ticket := s.nextSeq()

	fetched, err := s.repo.List(ctx)
	if err != nil {
		slog.Warn("list messages failed", "error", err)
		return s.fallback(ctx), fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	s.mu.Lock()
	merged := make([]model.Message, len(fetched))
	for i, m := range fetched {
		// A status update issued after this fetch already landed; keep it.
		if a, ok := s.applied[m.ID]; ok && a.seq > ticket {
			m = a.msg
		}
		merged[i] = m
	}
	s.messages = merged
	s.loaded = true
	s.version++
	version := s.version
	out := cloneMessages(merged)
	s.mu.Unlock()

	s.saveSnapshot(ctx, out, version)
	return out, nil
}

// UpdateStatus writes status for the message with id and returns the stored
// row. On success the in-memory copy is replaced. On failure the in-memory
// list is untouched and the error wraps ErrUpdateFailed (and
// ErrMessageNotFound when the id is unknown to the repository).
func (s *MessageStore) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return model.Message{}, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	ticket := s.nextSeq()

	stored, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Message{}, fmt.Errorf("%w: %w", ErrUpdateFailed, ErrMessageNotFound)
		}
		slog.Error("update message status failed", "error", err, "message_id", id, "status", status)
		return model.Message{}, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	s.mu.Lock()
	if newer := s.applied[id]; ticket < newer.seq {
		s.mu.Unlock()
		slog.Debug("discarding stale status update", "message_id", id, "status", status, "seq", ticket)
		return newer.msg, nil
	}
	s.applied[id] = appliedUpdate{seq: ticket, msg: stored}

	idx, found := indexByID(s.messages)[id]
	if found {
		next := cloneMessages(s.messages)
		next[idx] = stored
		s.messages = next
	}
	s.version++
	version := s.version
	snapshot := cloneMessages(s.messages)
	save := s.loaded && found
	s.mu.Unlock()

	if save {
		s.saveSnapshot(ctx, snapshot, version)
	}
	return stored, nil
}

// fallback returns the in-memory list, seeding it from the snapshot cache
// when nothing has been loaded yet.
func (s *MessageStore) fallback(ctx context.Context) []model.Message {
	s.mu.Lock()
	if s.loaded || s.cache == nil {
		out := cloneMessages(s.messages)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	cached, err := s.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("load message snapshot failed", "error", err)
		}
		return s.Snapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.messages = cloneMessages(cached)
		s.loaded = true
	}
	return cloneMessages(s.messages)
}

// saveSnapshot writes messages to the cache unless a newer version has
// already been written.
func (s *MessageStore) saveSnapshot(ctx context.Context, messages []model.Message, version uint64) {
	if s.cache == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if version <= s.savedVersion {
		return
	}
	if err := s.cache.Save(ctx, messages); err != nil {
		slog.Warn("save message snapshot failed", "error", err)
		return
	}
	s.savedVersion = version
}

func (s *MessageStore) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func indexByID(messages []model.Message) map[string]int {
	idx := make(map[string]int, len(messages))
	for i, m := range messages {
		idx[m.ID] = i
	}
	return idx
}

func cloneMessages(in []model.Message) []model.Message {
	out := make([]model.Message, len(in))
	copy(out, in)
	return out
}
