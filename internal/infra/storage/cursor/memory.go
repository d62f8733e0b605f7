package cursor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore хранит курсор в памяти процесса
// Используется, когда база данных не настроена: курсор живёт до перезапуска
type MemoryStore struct {
	mu         sync.Mutex
	checkpoint *Checkpoint
}

// NewMemoryStore создает пустое хранилище курсора
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load возвращает сохранённый курсор; false, если курсор ещё не сохранялся
func (s *MemoryStore) Load(_ context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkpoint == nil {
		return 0, false, nil
	}

	return s.checkpoint.NextUpdateID, true, nil
}

// Save сохраняет курсор; меньшее значение, чем уже сохранённое, игнорируется
func (s *MemoryStore) Save(_ context.Context, cursor int, instanceID string) error {
	if cursor < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCursor, cursor)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkpoint != nil && s.checkpoint.NextUpdateID > cursor {
		return nil
	}

	s.checkpoint = &Checkpoint{
		NextUpdateID: cursor,
		InstanceID:   instanceID,
		UpdatedAt:    time.Now(),
	}

	return nil
}

// Reset удаляет сохранённый курсор
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkpoint = nil
	return nil
}

// Checkpoint возвращает копию сохранённого состояния
func (s *MemoryStore) Checkpoint() (Checkpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkpoint == nil {
		return Checkpoint{}, false
	}

	return *s.checkpoint, true
}
