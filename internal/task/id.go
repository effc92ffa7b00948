package task

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out clock-derived ids (Unix milliseconds). Ids are strictly
// increasing within one generator even when the clock stalls or steps back.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading the given clock (time.Now when nil).
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() ID {
	return ID(strconv.FormatInt(g.nextInt(), 10))
}

// Reserve returns the first of n consecutive fresh ids; callers may use base+0..base+n-1.
func (g *IDGenerator) Reserve(n int) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	base := g.advance()
	if n > 1 {
		g.last = base + int64(n-1)
	}
	return base
}

func (g *IDGenerator) nextInt() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.advance()
}

func (g *IDGenerator) advance() int64 {
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}
