package bureau

import (
	"context"
	"sync"
	"time"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
)

type memoryEntry struct {
	score     model.BureauScore
	expiresAt time.Time
}

// MemoryScoreCache is an in-process ScoreCache for tests and local runs.
type MemoryScoreCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryScoreCache creates an empty in-memory cache with the given TTL.
func NewMemoryScoreCache(ttl time.Duration) *MemoryScoreCache {
	return &MemoryScoreCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached score for a CPF if present and not expired.
func (c *MemoryScoreCache) Get(_ context.Context, cpf string) (model.BureauScore, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cpf]
	if !ok || time.Now().After(entry.expiresAt) {
		return model.BureauScore{}, false, nil
	}
	return entry.score, true, nil
}

// Set stores a score, replacing any previous entry for the CPF.
func (c *MemoryScoreCache) Set(_ context.Context, cpf string, score model.BureauScore) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cpf] = memoryEntry{score: score, expiresAt: time.Now().Add(c.ttl)}
	return nil
}
