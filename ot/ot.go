//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package ot implements 1-out-of-2 oblivious transfer: a
// Bellare-Micali construction over RSA as the trapdoor one-way
// permutation. The sender offers two byte strings {m0, m1}; the
// receiver, holding a choice bit, learns exactly one of them. The
// sender learns nothing about the choice bit, and the receiver
// learns nothing about the unchosen message.
package ot

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// MinModulusBits is the minimum RSA modulus size this package
// accepts for the sender's keypair.
const MinModulusBits = 2048

// MessageSize is the fixed length, in bytes, of the secrets this
// OT transfers (matches garble.KeySize; this package does not
// import garble to keep the crypto core layered, so the contract is
// expressed as a plain length instead).
const MessageSize = 32

// Sender holds Alice's long-term RSA keypair for one OT session.
// Bellare-Micali calls for fresh key material per wire (see
// NewTransfer), but the modulus itself may be reused across wires
// within a run; NewSender models "fresh per run", and callers that
// want a fresh keypair per wire should call NewSender once per
// wire.
type Sender struct {
	priv *rsa.PrivateKey
}

// NewSender generates a fresh RSA keypair of at least
// MinModulusBits.
func NewSender() (*Sender, error) {
	priv, err := rsa.GenerateKey(rand.Reader, MinModulusBits)
	if err != nil {
		return nil, fmt.Errorf("ot: RSA keygen: %w", err)
	}
	return &Sender{priv: priv}, nil
}

// Params is the Setup-phase message Alice sends to Bob: the RSA
// public key and two random elements of Z_N*.
type Params struct {
	N  *big.Int
	E  int
	X0 *big.Int
	X1 *big.Int
}

// Transfer is the per-invocation sender state carried from Setup
// through Mask: the secret exponent and the x0/x1 chosen for this
// wire.
type Transfer struct {
	sender *Sender
	x0, x1 *big.Int
}

// NewTransfer runs the Setup phase: it draws fresh x0, x1 ∈ Z_N* and
// returns both the message to send to Bob and the sender-side state
// needed to complete the transfer once Bob's blinded value arrives.
func (s *Sender) NewTransfer() (*Transfer, *Params, error) {
	n := s.priv.PublicKey.N

	x0, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, nil, fmt.Errorf("ot: setup: %w", err)
	}
	x1, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, nil, fmt.Errorf("ot: setup: %w", err)
	}

	t := &Transfer{sender: s, x0: x0, x1: x1}
	params := &Params{
		N:  new(big.Int).Set(n),
		E:  s.priv.PublicKey.E,
		X0: new(big.Int).Set(x0),
		X1: new(big.Int).Set(x1),
	}
	return t, params, nil
}

// Blinded is the Blind-phase message Bob sends to Alice: his masked
// selection v.
type Blinded struct {
	V *big.Int
}

// ReceiverState is Bob's per-wire secret: the random k he drew
// during Blind and the choice bit he is transferring on.
type ReceiverState struct {
	k      *big.Int
	choice int
}

// Blind runs the receiver's Blind phase. It draws k uniformly from
// Z_N* and computes v = (x_c + k^e) mod N, which is statistically
// indistinguishable from uniform over Z_N* (since k^e is uniform,
// the RSA permutation being a bijection), hiding c from Alice
// information-theoretically.
//
// A degenerate v equal to x0 or x1 occurs with negligible
// probability; Blind treats it as fatal for this wire rather than
// retrying, per the reference stance.
func Blind(params *Params, choice int) (*ReceiverState, *Blinded, error) {
	if choice != 0 && choice != 1 {
		return nil, nil, fmt.Errorf("ot: choice must be 0 or 1, got %d", choice)
	}

	k, err := rand.Int(rand.Reader, params.N)
	if err != nil {
		return nil, nil, fmt.Errorf("ot: blind: %w", err)
	}

	xc := params.X0
	if choice == 1 {
		xc = params.X1
	}

	e := big.NewInt(int64(params.E))
	ke := new(big.Int).Exp(k, e, params.N)
	v := new(big.Int).Mod(new(big.Int).Add(xc, ke), params.N)

	if v.Cmp(params.X0) == 0 || v.Cmp(params.X1) == 0 {
		return nil, nil, fmt.Errorf("ot: degenerate blinded value, aborting this wire's transfer")
	}

	return &ReceiverState{k: k, choice: choice}, &Blinded{V: new(big.Int).Set(v)}, nil
}

// Masked is the Mask-phase message Alice sends to Bob: the two
// masked secrets.
type Masked struct {
	M0 []byte
	M1 []byte
}

// Mask runs the sender's Mask phase. Alice recovers candidate
// k0, k1 by inverting the RSA permutation on (v - x0) and (v - x1);
// only the one matching Bob's actual k will unmask correctly, and
// Alice cannot tell which that is. Each secret is masked by XOR with
// an HKDF-SHA-256 expansion of the corresponding k, to MessageSize
// bytes.
func (t *Transfer) Mask(blinded *Blinded, m0, m1 []byte) (*Masked, error) {
	if len(m0) != MessageSize || len(m1) != MessageSize {
		return nil, fmt.Errorf("ot: messages must be %d bytes", MessageSize)
	}

	n := t.sender.priv.PublicKey.N
	d := t.sender.priv.D

	k0 := new(big.Int).Mod(new(big.Int).Sub(blinded.V, t.x0), n)
	k0.Exp(k0, d, n)
	k1 := new(big.Int).Mod(new(big.Int).Sub(blinded.V, t.x1), n)
	k1.Exp(k1, d, n)

	h0, err := kdf(k0, len(m0))
	if err != nil {
		return nil, fmt.Errorf("ot: mask: %w", err)
	}
	h1, err := kdf(k1, len(m1))
	if err != nil {
		return nil, fmt.Errorf("ot: mask: %w", err)
	}

	return &Masked{
		M0: xor(m0, h0),
		M1: xor(m1, h1),
	}, nil
}

// Unblind runs the receiver's Unblind phase: K^c = m_c XOR H(k).
// Recovering K^{1-c} would require inverting the RSA permutation on
// k_{1-c} without the trapdoor, which Bob cannot feasibly do.
func (rs *ReceiverState) Unblind(masked *Masked) ([]byte, error) {
	m := masked.M0
	if rs.choice == 1 {
		m = masked.M1
	}
	h, err := kdf(rs.k, len(m))
	if err != nil {
		return nil, fmt.Errorf("ot: unblind: %w", err)
	}
	return xor(m, h), nil
}

// kdf expands k's big-endian bytes through HKDF-SHA-256 to n bytes.
func kdf(k *big.Int, n int) ([]byte, error) {
	r := hkdf.New(newSHA256, k.Bytes(), nil, []byte("yaogc-ot"))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
