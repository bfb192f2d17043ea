package shell

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces piece identifiers for operators who do not supply
// their own. Uniqueness is ultimately enforced by the registry; the
// generator only provides a convenient default.
type IDGenerator interface {
	Next() string
}

// NewIDGenerator returns the generator for the configured scheme:
// "uuid" for random UUIDs, anything else for sequential P0001-style IDs.
func NewIDGenerator(scheme string) IDGenerator {
	if scheme == "uuid" {
		return uuidGenerator{}
	}
	return &sequentialGenerator{}
}

// sequentialGenerator yields P0001, P0002, ... The counter keeps advancing
// past removals so identifiers are never reissued within a session.
type sequentialGenerator struct {
	next int
}

func (g *sequentialGenerator) Next() string {
	g.next++
	return fmt.Sprintf("P%04d", g.next)
}

type uuidGenerator struct{}

func (uuidGenerator) Next() string {
	return uuid.New().String()
}
