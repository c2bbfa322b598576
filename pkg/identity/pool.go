// Package identity supplies rotating client-identity strings for outbound
// requests, selected uniformly at random from a fixed read-only pool
package identity

import (
	"math/rand"
	"sync"
	"time"
)

// HeaderName is the request header the pool's values are attached to
const HeaderName = "User-Agent"

// Pool is a read-only set of client identities. Selection is pseudo-random
// and never fails; the pool holds no other state
type Pool struct {
	agents []string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPool builds a pool from the given identities. An empty slice falls back
// to the built-in default pool
func NewPool(agents []string) *Pool {
	if len(agents) == 0 {
		agents = DefaultAgents()
	}
	return &Pool{
		agents: agents,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next picks one identity uniformly at random. Safe for concurrent use
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.agents[p.rng.Intn(len(p.agents))]
}

// Size returns the number of identities in the pool
func (p *Pool) Size() int {
	return len(p.agents)
}
