// Package store keeps per-user resume records behind a small repository
// interface. The shipped implementation is in-memory; anything durable
// slots in behind the same interface.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/udit/resume-optimizer/internal/types"
)

// NotFoundError reports a user with no stored resume.
type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no resume stored for user %s", e.UserID)
}

// Resumes is the repository capability the pipeline depends on.
type Resumes interface {
	Get(ctx context.Context, userID string) (*types.ParsedResume, error)
	Put(ctx context.Context, userID string, resume *types.ParsedResume) error
}

// MemoryResumes is a process-local Resumes implementation. Records are
// deep-copied on both Put and Get, so the store and its callers never
// share mutable state.
type MemoryResumes struct {
	mu      sync.RWMutex
	records map[string]*types.ParsedResume
}

// NewMemoryResumes creates an empty store.
func NewMemoryResumes() *MemoryResumes {
	return &MemoryResumes{records: make(map[string]*types.ParsedResume)}
}

// Get returns a copy of the user's stored resume.
func (s *MemoryResumes) Get(ctx context.Context, userID string) (*types.ParsedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	resume, ok := s.records[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{UserID: userID}
	}
	return resume.Clone(), nil
}

// Put stores a copy of the resume under the user ID, replacing any
// previous record.
func (s *MemoryResumes) Put(ctx context.Context, userID string, resume *types.ParsedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if resume == nil {
		return fmt.Errorf("resume is required")
	}

	s.mu.Lock()
	s.records[userID] = resume.Clone()
	s.mu.Unlock()
	return nil
}
