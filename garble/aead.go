//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// magic is the fixed 4-byte marker every sealed plaintext begins
// with. Successful Open requires both AEAD authentication and the
// presence of this marker; the latter is defense-in-depth against
// accidental acceptance of a differently-shaped plaintext.
var magic = [4]byte{'G', 'A', 'R', 'B'}

// Sealed is one garbled-gate ciphertext row: a fresh nonce and the
// AEAD ciphertext-with-tag it was sealed under.
type Sealed struct {
	Nonce      []byte
	Ciphertext []byte
}

// Seal authenticated-encrypts an output wire key under outer,
// binding inner (if non-nil) as additional authenticated data. This
// composes two input-wire keys into one effective encryption key,
// per the garbling scheme: outer is one gate input's key, inner is
// the other, so both must match for Open to authenticate. inner is
// nil for single-input (NOT) gates.
func Seal(outer Key, inner *Key, value Key) (Sealed, error) {
	aead, err := chacha20poly1305.New(outer[:])
	if err != nil {
		return Sealed{}, fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return Sealed{}, fmt.Errorf("seal: %w", err)
	}

	plaintext := make([]byte, 0, len(magic)+KeySize)
	plaintext = append(plaintext, magic[:]...)
	plaintext = append(plaintext, value[:]...)

	ciphertext := aead.Seal(nil, nonce, plaintext, aad(inner))
	return Sealed{Nonce: nonce, Ciphertext: ciphertext}, nil
}

// Open attempts to authenticate and decrypt a sealed row. It
// returns ok=false, without distinguishing the reason, on AEAD
// authentication failure or on a missing magic prefix — both
// indicate this row was not sealed for this (outer, inner) key
// pairing.
func Open(outer Key, inner *Key, row Sealed) (value Key, ok bool) {
	aead, err := chacha20poly1305.New(outer[:])
	if err != nil {
		return Key{}, false
	}

	plaintext, err := aead.Open(nil, row.Nonce, row.Ciphertext, aad(inner))
	if err != nil {
		return Key{}, false
	}
	if len(plaintext) != len(magic)+KeySize {
		return Key{}, false
	}
	if subtle.ConstantTimeCompare(plaintext[:len(magic)], magic[:]) != 1 {
		return Key{}, false
	}

	var v Key
	copy(v[:], plaintext[len(magic):])
	return v, true
}

func aad(inner *Key) []byte {
	if inner == nil {
		return nil
	}
	return inner[:]
}
