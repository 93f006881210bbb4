// Package primitives is the narrow façade over the cryptographic building
// blocks the handshake driver needs: RSA PKCS#1 v1.5 decrypt/sign, the
// fixed DHE_RSA group, the TLS PRF and Finished-hash accumulator, and a
// source of randomness. None of these types know about handshake state;
// they are pure functions and small stateful accumulators, callable from
// the driver synchronously (per the "no suspension points" concurrency
// contract).
package primitives

import (
	"crypto/subtle"
	"errors"
	"io"
	"math/big"
)

// Group is a finite-field Diffie-Hellman group: a safe prime P and a
// generator G. No third-party library in the reference pack performs
// prime-field (non-elliptic) Diffie-Hellman -- the pack's DH-shaped code is
// all curve-based (X25519, P-256/P-384/P-521) -- so this is implemented
// directly against math/big, the standard library's own arbitrary-precision
// integer type.
type Group struct {
	P, G *big.Int
}

// Group2 is RFC 2409 Appendix 6.2's "Second Oakley Default Group": a
// 1024-bit MODP group with generator 2. It is the one DH group this driver
// supports, matching the distilled spec's deliberate choice not to
// parameterize the group.
var Group2 = &Group{
	P: mustHex("" +
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
		"129024E088A67CC74020BBEA63B139B22514A08798E3404" +
		"DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C" +
		"245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406" +
		"B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE" +
		"65381FFFFFFFFFFFFFFFF"),
	G: big.NewInt(2),
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("primitives: invalid hex constant")
	}
	return n
}

// DHKeyPair is an ephemeral Diffie-Hellman keypair over Group.
type DHKeyPair struct {
	Group   *Group
	Private *big.Int
	Public  *big.Int
}

// GenerateDHKeyPair draws a private exponent and computes the
// corresponding public share g^x mod p.
func GenerateDHKeyPair(rand io.Reader, group *Group) (*DHKeyPair, error) {
	// A private exponent up to the bit length of P is generated and then
	// range-checked, rather than reduced mod P, so the distribution stays
	// uniform over [1, P-1].
	for {
		priv, err := randInt(rand, group.P)
		if err != nil {
			return nil, err
		}
		if priv.Sign() <= 0 {
			continue
		}
		pub := new(big.Int).Exp(group.G, priv, group.P)
		return &DHKeyPair{Group: group, Private: priv, Public: pub}, nil
	}
}

// ErrInvalidDHShare is returned when a peer's DH public share fails the
// range check required to avoid small-subgroup and degenerate-share
// attacks (RFC 2631 §2.1.5).
var ErrInvalidDHShare = errors.New("tls: invalid DH public share")

// DHSharedSecret computes g^(xy) mod p from the local private exponent and
// the peer's public share, rejecting shares that are degenerate (0, 1, or
// p-1) or out of range, per the distilled spec's "insufficient_security on
// any share the computation rejects" requirement.
func (kp *DHKeyPair) DHSharedSecret(peerPublic *big.Int) ([]byte, error) {
	p := kp.Group.P
	one := big.NewInt(1)
	pMinusOne := new(big.Int).Sub(p, one)

	if peerPublic.Cmp(one) <= 0 || peerPublic.Cmp(pMinusOne) >= 0 {
		return nil, ErrInvalidDHShare
	}

	secret := new(big.Int).Exp(peerPublic, kp.Private, p)
	if secret.Cmp(one) <= 0 || subtle.ConstantTimeCompare(secret.Bytes(), pMinusOne.Bytes()) == 1 {
		return nil, ErrInvalidDHShare
	}

	// Pad to the byte length of P: RFC 5246 §8.1.2 requires the premaster
	// secret to be exactly that length, left-padded with zeros.
	out := make([]byte, (p.BitLen()+7)/8)
	secret.FillBytes(out)
	return out, nil
}
