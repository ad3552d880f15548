// Package gamecode generates the short shareable codes players type to join
// a lobby.
package gamecode

import (
	"math/rand"
	"strings"
	"time"
)

// Length is the number of characters in a game code.
const Length = 6

// alphabet omits the lookalike characters O/0 and I/1 so codes survive being
// read aloud or scribbled down.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator produces game codes from an optionally seeded source.
type Generator struct {
	random *rand.Rand
}

// Config for the generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new code generator.
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns a new 6-character game code.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[g.random.Intn(len(alphabet))])
	}
	return b.String()
}

// Normalize maps user input to canonical code form. Join-by-code is
// case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
