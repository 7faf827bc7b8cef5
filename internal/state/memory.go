package state

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the fallback when no durable store is available (a
// sandboxed runtime, an unwritable data dir). Progress survives for the
// session only; the rest of the app behaves exactly as with SQLite.
type MemoryStore struct {
	mu       sync.Mutex
	settings map[string]string
	answers  map[string]AnswerRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		settings: map[string]string{},
		answers:  map[string]AnswerRecord{},
	}
}

func (s *MemoryStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *MemoryStore) PutSetting(_ context.Context, key, value string) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *MemoryStore) AllSettings(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) GetAnswers(_ context.Context) ([]AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AnswerRecord, 0, len(s.answers))
	for _, rec := range s.answers {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) PutAnswer(_ context.Context, rec AnswerRecord) error {
	if rec.ID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[rec.ID] = rec
	return nil
}

func (s *MemoryStore) DeleteAnswers(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = map[string]AnswerRecord{}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
