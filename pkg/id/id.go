package id

import (
	"net"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/cespare/xxhash"
)

// Call tags a single clipboard write so that the log lines of a detached
// owner can be matched with the call that spawned it.
type Call = snowflake.ID

var generator = new(callGenerator)

type callGenerator struct {
	node *snowflake.Node
	once sync.Once
}

func (g *callGenerator) next() Call {
	g.once.Do(func() {
		node, err := snowflake.NewNode(hostNode())
		if err != nil {
			// hostNode is always within [0, 1023]
			node, _ = snowflake.NewNode(0)
		}
		g.node = node
	})
	return g.node.Generate()
}

func New() Call {
	return generator.next()
}

// hostNode derives the snowflake node number from the first hardware
// address so ids from two machines sharing logs do not collide.
func hostNode() int64 {
	interfaces, err := net.Interfaces()
	if err != nil {
		return 1
	}

	for _, i := range interfaces {
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			return int64(xxhash.Sum64(i.HardwareAddr) % 1024)
		}
	}

	return 1
}
