package idgen

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
)

// Generator produces strictly increasing 64-bit IDs. Search generations
// lean on this ordering to tell a fresh result set from a stale one.
type Generator interface {
	NextID() int64
}

// SnowflakeGenerator implements Generator using Twitter Snowflake.
// IDs are time-ordered, so later searches always carry larger tokens.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.node.Generate().Int64()
}

// Sequence is a plain in-memory counter. Handy in tests where snowflake's
// time component would make assertions awkward.
type Sequence struct {
	last int64
}

func (s *Sequence) NextID() int64 {
	return atomic.AddInt64(&s.last, 1)
}
