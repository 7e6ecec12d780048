package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/udit/resume-optimizer/internal/types"
)

// CachedExtractor memoizes extractions by content hash. Concurrent
// requests for the same text share a single in-flight model call, and
// every hit returns a deep copy so callers never share mutable state.
// Failures are not cached; the next request retries.
type CachedExtractor struct {
	inner Service
	group singleflight.Group

	mu      sync.RWMutex
	resumes map[string]*types.ParsedResume
	jobs    map[string]*types.JobRequirements
}

// NewCached wraps inner with content-hash caching.
func NewCached(inner Service) *CachedExtractor {
	return &CachedExtractor{
		inner:   inner,
		resumes: make(map[string]*types.ParsedResume),
		jobs:    make(map[string]*types.JobRequirements),
	}
}

func cacheKey(kind, text string) string {
	sum := sha256.Sum256([]byte(text))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// ExtractResume returns a cached result when the exact text has been
// extracted before, otherwise delegates to the wrapped Service.
func (c *CachedExtractor) ExtractResume(ctx context.Context, rawText string) (*types.ParsedResume, error) {
	key := cacheKey("resume", rawText)

	c.mu.RLock()
	cached, ok := c.resumes[key]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		resume, err := c.inner.ExtractResume(ctx, rawText)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.resumes[key] = resume
		c.mu.Unlock()
		return resume, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.ParsedResume).Clone(), nil
}

// ExtractJob is the job-posting counterpart of ExtractResume.
func (c *CachedExtractor) ExtractJob(ctx context.Context, rawText string) (*types.JobRequirements, error) {
	key := cacheKey("job", rawText)

	c.mu.RLock()
	cached, ok := c.jobs[key]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		job, err := c.inner.ExtractJob(ctx, rawText)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.jobs[key] = job
		c.mu.Unlock()
		return job, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.JobRequirements).Clone(), nil
}
