package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udit/resume-optimizer/internal/types"
)

func sampleResume(name string) *types.ParsedResume {
	return &types.ParsedResume{
		Contact: types.ContactInfo{Name: name},
		Skills:  []string{"go", "python"},
	}
}

func TestMemoryResumes_PutGetRoundtrip(t *testing.T) {
	s := NewMemoryResumes()

	require.NoError(t, s.Put(context.Background(), "user-1", sampleResume("Jane Doe")))

	got, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Contact.Name)
	assert.Equal(t, []string{"go", "python"}, got.Skills)
}

func TestMemoryResumes_GetUnknownUser(t *testing.T) {
	s := NewMemoryResumes()

	_, err := s.Get(context.Background(), "nobody")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nobody", nf.UserID)
}

func TestMemoryResumes_CallersCannotMutateStoredRecord(t *testing.T) {
	s := NewMemoryResumes()
	original := sampleResume("Jane Doe")

	require.NoError(t, s.Put(context.Background(), "user-1", original))
	// Mutating the record after Put must not reach the store.
	original.Skills[0] = "mutated"

	first, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "go", first.Skills[0])

	// Mutating a Get result must not reach later readers.
	first.Skills[0] = "also mutated"
	second, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "go", second.Skills[0])
}

func TestMemoryResumes_PutReplacesRecord(t *testing.T) {
	s := NewMemoryResumes()

	require.NoError(t, s.Put(context.Background(), "user-1", sampleResume("First")))
	require.NoError(t, s.Put(context.Background(), "user-1", sampleResume("Second")))

	got, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Contact.Name)
}

func TestMemoryResumes_RejectsBadInput(t *testing.T) {
	s := NewMemoryResumes()

	assert.Error(t, s.Put(context.Background(), "", sampleResume("Jane")))
	assert.Error(t, s.Put(context.Background(), "user-1", nil))
}

func TestMemoryResumes_ConcurrentAccess(t *testing.T) {
	s := NewMemoryResumes()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%4)
			_ = s.Put(context.Background(), userID, sampleResume(userID))
			_, _ = s.Get(context.Background(), userID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		got, err := s.Get(context.Background(), fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.NotNil(t, got)
	}
}
