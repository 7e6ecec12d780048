package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStream_Emit(t *testing.T) {
	rec := httptest.NewRecorder()
	stream, err := newEventStream(rec)
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	stream.Emit("stage", map[string]string{"stage": "matching"})
	require.NoError(t, stream.Err())

	body := rec.Body.String()
	assert.Contains(t, body, "event: stage\n")
	assert.Contains(t, body, `data: {"stage":"matching"}`+"\n\n")
	assert.True(t, rec.Flushed)
}

func TestEventStream_FailAndDone(t *testing.T) {
	rec := httptest.NewRecorder()
	stream, err := newEventStream(rec)
	require.NoError(t, err)

	stream.Fail("something broke")
	stream.Done("run-1", "done")
	require.NoError(t, stream.Err())

	body := rec.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"error":"something broke"`)
	assert.Contains(t, body, "event: complete\n")
	assert.Contains(t, body, `"run_id":"run-1"`)
	assert.Contains(t, body, `"stage":"done"`)
}

func TestEventStream_StickyWriteError(t *testing.T) {
	w := &failingWriter{}
	stream, err := newEventStream(w)
	require.NoError(t, err)

	stream.Emit("stage", map[string]string{"stage": "extracting"})
	require.Error(t, stream.Err())

	// Later emits are dropped, the first error is preserved.
	first := stream.Err()
	stream.Emit("stage", map[string]string{"stage": "matching"})
	assert.Equal(t, first, stream.Err())
	assert.Equal(t, 1, w.writes)
}

func TestEventStream_UnsupportedWriter(t *testing.T) {
	_, err := newEventStream(plainWriter{})
	assert.Error(t, err)
}

// plainWriter is a ResponseWriter that cannot flush.
type plainWriter struct{}

func (plainWriter) Header() http.Header         { return http.Header{} }
func (plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (plainWriter) WriteHeader(int)             {}

// failingWriter flushes but rejects every write.
type failingWriter struct {
	writes int
}

func (f *failingWriter) Header() http.Header { return http.Header{} }
func (f *failingWriter) Write(b []byte) (int, error) {
	f.writes++
	return 0, http.ErrHandlerTimeout
}
func (f *failingWriter) WriteHeader(int) {}
func (f *failingWriter) Flush()          {}
