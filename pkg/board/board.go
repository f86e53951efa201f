// Package board persists named diagram scenes. A board is a saved
// element list with a version counter for optimistic concurrency: every
// update must present the version it read, and a stale version is
// rejected rather than silently overwritten.
package board

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/draftboard/pkg/errors"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// MaxNameLength caps board names.
const MaxNameLength = 200

// Board is one saved diagram scene.
type Board struct {
	ID        string          `json:"id" bson:"_id"`
	Owner     string          `json:"owner,omitempty" bson:"owner,omitempty"`
	Name      string          `json:"name" bson:"name"`
	Prompt    string          `json:"prompt,omitempty" bson:"prompt,omitempty"`
	Elements  []scene.Element `json:"elements" bson:"elements"`
	Version   int64           `json:"version" bson:"version"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// New creates an unsaved board with a fresh ID and version 1.
func New(owner, name string, elements []scene.Element) *Board {
	now := time.Now().UTC()
	return &Board{
		ID:        uuid.NewString(),
		Owner:     owner,
		Name:      name,
		Elements:  elements,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the board is storable.
func Validate(b *Board) error {
	if b == nil {
		return errors.New(errors.ErrCodeInvalidBoard, "board is nil")
	}
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidBoard, "board ID is empty")
	}
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return errors.New(errors.ErrCodeInvalidBoard, "board name is empty")
	}
	if len(name) > MaxNameLength {
		return errors.New(errors.ErrCodeInvalidBoard, "board name exceeds %d characters", MaxNameLength)
	}
	if b.Version < 1 {
		return errors.New(errors.ErrCodeInvalidBoard, "board version must be positive, got %d", b.Version)
	}
	return nil
}

// Summary is the list-view projection of a board, without elements.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Version   int64     `json:"version" bson:"version"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for board persistence backends.
//
// Update enforces optimistic concurrency: the stored board is replaced
// only when its version matches b.Version, and the version is
// incremented on success. A mismatch yields ErrCodeVersionConflict.
type Store interface {
	// Create inserts a new board. Inserting an existing ID is an error.
	Create(ctx context.Context, b *Board) error

	// Get retrieves a board by ID. A missing board yields
	// ErrCodeBoardNotFound.
	Get(ctx context.Context, owner, id string) (*Board, error)

	// List returns summaries of the owner's boards, most recently
	// updated first.
	List(ctx context.Context, owner string) ([]Summary, error)

	// Update replaces a board's contents if versions match. On success
	// b.Version and b.UpdatedAt are refreshed in place.
	Update(ctx context.Context, b *Board) error

	// Delete removes a board. A missing board yields
	// ErrCodeBoardNotFound.
	Delete(ctx context.Context, owner, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
