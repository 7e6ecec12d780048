package llm

import (
	"context"
	"sync"
)

// Fake is a deterministic Client for tests. Responses are consumed in
// order; each one passes through the same schema validation as the real
// client, so scripting malformed output exercises the retry paths.
type Fake struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []Request
}

type fakeResponse struct {
	text string
	err  error
}

// NewFake creates an empty fake; script it with Respond/Fail.
func NewFake() *Fake {
	return &Fake{}
}

// Respond queues a text response.
func (f *Fake) Respond(text string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{text: text})
	return f
}

// Fail queues an error response.
func (f *Fake) Fail(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{err: err})
	return f
}

// Complete pops the next scripted response. When the script is
// exhausted, the last response repeats, so steady-state tests need only
// one entry.
func (f *Fake) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ModelUnavailableError{Message: "context done", Cause: err}
	}

	f.mu.Lock()
	f.calls = append(f.calls, req)
	if len(f.responses) == 0 {
		f.mu.Unlock()
		return "", &ModelUnavailableError{Message: "fake has no scripted responses"}
	}
	next := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	f.mu.Unlock()

	if next.err != nil {
		return "", next.err
	}
	return ValidateOutput(req.Schema, CleanJSONBlock(next.text))
}

// Close implements Client.
func (f *Fake) Close() error { return nil }

// Calls returns a copy of the requests seen so far.
func (f *Fake) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.calls...)
}

// CallCount returns how many Complete calls were made.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
