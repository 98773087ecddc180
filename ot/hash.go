//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/sha256"
	"hash"
)

func newSHA256() hash.Hash {
	return sha256.New()
}
