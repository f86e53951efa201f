package board

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/draftboard/pkg/errors"
)

// MemoryStore keeps boards in process memory. Suitable for development
// and tests; contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

// NewMemoryStore creates an empty in-memory board store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]*Board)}
}

func (s *MemoryStore) Create(ctx context.Context, b *Board) error {
	if err := Validate(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[b.ID]; exists {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s already exists", b.ID)
	}
	s.boards[b.ID] = clone(b)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, owner, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[id]
	if !ok || b.Owner != owner {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	return clone(b), nil
}

func (s *MemoryStore) List(ctx context.Context, owner string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0)
	for _, b := range s.boards {
		if b.Owner != owner {
			continue
		}
		summaries = append(summaries, Summary{
			ID:        b.ID,
			Name:      b.Name,
			Version:   b.Version,
			UpdatedAt: b.UpdatedAt,
		})
	}
	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return summaries, nil
}

func (s *MemoryStore) Update(ctx context.Context, b *Board) error {
	if err := Validate(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.boards[b.ID]
	if !ok || stored.Owner != b.Owner {
		return errors.New(errors.ErrCodeBoardNotFound, "board %s not found", b.ID)
	}
	if stored.Version != b.Version {
		return errors.New(errors.ErrCodeVersionConflict,
			"board %s version %d does not match stored version %d", b.ID, b.Version, stored.Version)
	}

	b.Version++
	b.UpdatedAt = time.Now().UTC()
	b.CreatedAt = stored.CreatedAt
	s.boards[b.ID] = clone(b)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[id]
	if !ok || b.Owner != owner {
		return errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	delete(s.boards, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func clone(b *Board) *Board {
	copied := *b
	copied.Elements = slices.Clone(b.Elements)
	return &copied
}

var _ Store = (*MemoryStore)(nil)
