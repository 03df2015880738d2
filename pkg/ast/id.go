package ast

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator assigns identifiers to AST nodes in document order.
type IDGenerator interface {
	NewID() string
}

// IncrementingIDGenerator yields "0", "1", "2", ... within one parse. It is
// the default because it keeps parser output deterministic.
type IncrementingIDGenerator struct {
	next int
}

func NewIncrementingIDGenerator() *IncrementingIDGenerator {
	return &IncrementingIDGenerator{}
}

func (g *IncrementingIDGenerator) NewID() string {
	id := strconv.Itoa(g.next)
	g.next++
	return id
}

// UUIDGenerator yields random UUIDs, for callers that merge nodes from many
// documents and need globally unique ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
