//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// shuffle performs an in-place, cryptographically seeded
// Fisher-Yates shuffle. A biased shuffle would leak input-bit
// correlations through row position, so every swap index is drawn
// from crypto/rand rather than math/rand.
func shuffle(rows []Sealed) error {
	for i := len(rows) - 1; i > 0; i-- {
		j, err := secureIntn(i + 1)
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		rows[i], rows[j] = rows[j], rows[i]
	}
	return nil
}

func secureIntn(n int) (int, error) {
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
