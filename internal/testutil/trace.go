package testutil

import (
	"fmt"
	"sync"
)

// FixedTraceGenerator returns the same trace id every time.
//
// CLI JSON responses carry a trace id; a fixed id makes that output
// byte-identical across runs so it can be compared against golden files.
//
// Thread-safety: FixedTraceGenerator is stateless and safe for concurrent use.
type FixedTraceGenerator struct {
	id string
}

// NewFixedTraceGenerator creates a fixed trace id generator.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceGenerator(id string) *FixedTraceGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceGenerator{id: id}
}

// Generate returns the fixed trace id.
func (g *FixedTraceGenerator) Generate() string {
	return g.id
}

// SequenceTraceGenerator returns "<prefix>-1", "<prefix>-2", ... so tests
// can tell apart responses produced in one run.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceTraceGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequenceTraceGenerator creates a generator whose first id is prefix-1.
func NewSequenceTraceGenerator(prefix string) *SequenceTraceGenerator {
	return &SequenceTraceGenerator{prefix: prefix}
}

// Generate increments the sequence and returns the next id.
func (g *SequenceTraceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Current returns the last issued sequence number without incrementing.
func (g *SequenceTraceGenerator) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. After Reset(), the next id is prefix-1.
func (g *SequenceTraceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
