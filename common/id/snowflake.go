// Package id generates the int64 identifiers used by every evaluation
// record. IDs are Snowflake-style: time-ordered, so evaluation and
// assignment rows sort by creation without a separate timestamp index.
package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	gen     *snowflake.Node
	genOnce sync.Once
)

// Init sets up the generator. Call once at process start; nodeID must be
// unique per running instance or concurrent instances can collide.
func Init(nodeID int64) error {
	var err error
	genOnce.Do(func() {
		gen, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns the next unique ID. Init must have succeeded first.
func New() int64 {
	return gen.Generate().Int64()
}
