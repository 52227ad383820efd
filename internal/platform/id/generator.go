package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 16

// Generator creates opaque IDs for externally visible references such as
// recommendation report IDs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

var _ Generator = (*RandomGenerator)(nil)

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
