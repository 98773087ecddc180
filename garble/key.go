//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package garble implements the garbling scheme: per-wire key pairs,
// authenticated per-gate ciphertext tables, the garbler that builds
// them, and the evaluator that decrypts exactly one row per gate.
package garble

import (
	"crypto/rand"
	"fmt"

	"github.com/twoparty/yaogc/circuit"
)

// KeySize is the wire key length in bytes (256 bits), chosen to
// match the key size chacha20poly1305 requires for gate encryption.
const KeySize = 32

// Key is an opaque wire key.
type Key [KeySize]byte

// NewKey draws a fresh, cryptographically random wire key.
func NewKey() (Key, error) {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		return k, fmt.Errorf("generate wire key: %w", err)
	}
	return k, nil
}

// Pair holds a wire's two keys, one per possible bit value.
type Pair struct {
	K0 Key
	K1 Key
}

// Of returns the key corresponding to the given bit.
func (p Pair) Of(bit bool) Key {
	if bit {
		return p.K1
	}
	return p.K0
}

// Keyring holds the garbler's exclusive key material: one Pair per
// wire the circuit ever references, as an input or as a gate
// output.
type Keyring struct {
	pairs map[circuit.Wire]Pair
}

// Generate creates a fresh keyring for every wire of c: its Alice
// and Bob inputs, and every gate's output wire.
func Generate(c *circuit.Circuit) (*Keyring, error) {
	kr := &Keyring{pairs: make(map[circuit.Wire]Pair, c.NumWires())}

	assign := func(w circuit.Wire) error {
		if _, ok := kr.pairs[w]; ok {
			return nil
		}
		k0, err := NewKey()
		if err != nil {
			return err
		}
		k1, err := NewKey()
		if err != nil {
			return err
		}
		kr.pairs[w] = Pair{K0: k0, K1: k1}
		return nil
	}

	for _, w := range c.Alice {
		if err := assign(w); err != nil {
			return nil, err
		}
	}
	for _, w := range c.Bob {
		if err := assign(w); err != nil {
			return nil, err
		}
	}
	for _, g := range c.Gates {
		if err := assign(g.Output); err != nil {
			return nil, err
		}
	}
	return kr, nil
}

// Pair returns the key pair of a wire. It panics if the wire is
// unknown to the keyring, which would indicate a bug in Generate or
// in circuit validation (every gate input is guaranteed by
// Circuit.Validate to be a circuit input or an earlier gate's
// output, hence already present).
func (kr *Keyring) Pair(w circuit.Wire) Pair {
	p, ok := kr.pairs[w]
	if !ok {
		panic(fmt.Sprintf("garble: no key pair for wire %v", w))
	}
	return p
}
