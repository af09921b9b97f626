package exercise

import (
	"math/rand/v2"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
)

// Shuffler permutes n elements through swap. *rand.Rand's Shuffle method and
// the package-level rand.Shuffle both satisfy it.
type Shuffler func(n int, swap func(i, j int))

// DefaultShuffler draws from the runtime-seeded global source.
var DefaultShuffler Shuffler = rand.Shuffle

// Shuffle returns a uniformly permuted copy of tokens.
func Shuffle(tokens []models.Token, shuffle Shuffler) []models.Token {
	out := make([]models.Token, len(tokens))
	copy(out, tokens)
	if shuffle == nil {
		shuffle = DefaultShuffler
	}
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
