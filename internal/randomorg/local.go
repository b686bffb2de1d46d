package randomorg

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Local draws from the process PRNG. It is meant for development without an API key.
type Local struct{}

func (Local) Draw(ctx context.Context, min, max int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if min > max {
		return 0, fmt.Errorf("invalid range [%d, %d]", min, max)
	}
	return min + rand.IntN(max-min+1), nil
}
