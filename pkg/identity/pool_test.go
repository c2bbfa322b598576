package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAgents_Size(t *testing.T) {
	agents := DefaultAgents()
	// "Several hundred" distinct identities
	assert.Greater(t, len(agents), 300)

	seen := make(map[string]struct{}, len(agents))
	for _, a := range agents {
		seen[a] = struct{}{}
	}
	assert.Len(t, seen, len(agents), "pool must not contain duplicates")
}

func TestPool_NextReturnsPoolMember(t *testing.T) {
	agents := []string{"agent-a", "agent-b", "agent-c"}
	pool := NewPool(agents)

	members := map[string]struct{}{}
	for _, a := range agents {
		members[a] = struct{}{}
	}

	for i := 0; i < 100; i++ {
		_, ok := members[pool.Next()]
		assert.True(t, ok)
	}
}

func TestPool_EmptyFallsBackToDefaults(t *testing.T) {
	pool := NewPool(nil)
	assert.Equal(t, len(DefaultAgents()), pool.Size())
	assert.NotEmpty(t, pool.Next())
}

func TestPool_SingleAgentIsDeterministic(t *testing.T) {
	pool := NewPool([]string{"only"})
	for i := 0; i < 10; i++ {
		assert.Equal(t, "only", pool.Next())
	}
}
