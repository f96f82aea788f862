package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Epoch is the Snowflake epoch used by every generator: 2024-01-01T00:00:00Z,
// the start of the sampling season the dashboard fixtures cover.
const Epoch int64 = 1704067200000

// maxNodeID is the largest node id that fits the 10 node bits.
const maxNodeID = 1<<10 - 1

//nolint:gochecknoglobals // guards the library's package-level epoch
var setEpoch sync.Once

// NumberID generates time ordered numeric ids for chat messages and
// contributions.
type NumberID interface {
	Generate() int64
}

// Snowflake generates 63-bit ids: milliseconds since Epoch, node, sequence.
type Snowflake struct {
	node *snowflake.Node
}

func randomNodeID() (int64, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random node id: %w", err)
	}
	return int64(binary.BigEndian.Uint16(b[:])) & maxNodeID, nil
}

// NewSnowflake picks a random node id, which is enough for a single replica.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := randomNodeID()
	if err != nil {
		return nil, err
	}
	return NewSnowflakeWithNode(nodeID)
}

// NewSnowflakeWithNode pins the node id (snowflake.node_id), for deployments
// running several replicas that must not collide.
func NewSnowflakeWithNode(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id %d out of range 0..%d", nodeID, maxNodeID)
	}

	setEpoch.Do(func() { snowflake.Epoch = Epoch })

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
