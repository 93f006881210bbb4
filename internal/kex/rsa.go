// Package kex implements the two key-exchange subroutines the driver
// supports -- RSA and DHE_RSA -- plus the master-secret/key-block
// derivation and ServerKeyExchange signing common to both.
package kex

import (
	"crypto/rsa"
	"io"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

// RSAPreMasterSecret runs the Bleichenbacher-safe decrypt-and-validate
// flow (RFC 5246 §7.4.7.1) for a ClientKeyExchange ciphertext under an RSA
// key exchange. It never returns a validation error distinguishable from
// a decryption failure: every path yields a syntactically valid 48-byte
// secret, substituting fresh randomness whenever decryption failed or the
// recovered version field did not match clientVersion. The caller cannot
// and must not branch on which case occurred.
func RSAPreMasterSecret(rand io.Reader, priv *rsa.PrivateKey, ciphertext []byte, clientVersion uint16) ([]byte, error) {
	random := make([]byte, primitives.PreMasterSecretLength)
	if _, err := io.ReadFull(rand, random); err != nil {
		return nil, err
	}
	random[0] = byte(clientVersion >> 8)
	random[1] = byte(clientVersion)

	decrypted, err := primitives.DecryptPreMasterSecret(rand, priv, ciphertext, random)
	if err != nil {
		// Only a malformed call (wrong buffer length) reaches here, never a
		// property of the ciphertext; DecryptPreMasterSecret itself never
		// surfaces a decryption failure as an error.
		return nil, err
	}

	// Constant-time version check: select random wholesale unless both
	// version octets of decrypted match, without a data-dependent branch
	// on "did decryption succeed".
	versionOK := subtleEqualByte(decrypted[0], random[0]) & subtleEqualByte(decrypted[1], random[1])
	out := make([]byte, primitives.PreMasterSecretLength)
	for i := range out {
		out[i] = selectByte(versionOK, decrypted[i], random[i])
	}
	return out, nil
}

// subtleEqualByte returns 1 if a == b, 0 otherwise, without a branch.
func subtleEqualByte(a, b byte) byte {
	d := a ^ b
	d |= d >> 4
	d |= d >> 2
	d |= d >> 1
	return (d & 1) ^ 1
}

// selectByte returns a if mask == 1, b if mask == 0 (mask must be 0 or 1).
func selectByte(mask, a, b byte) byte {
	m := -mask // 0x00 or 0xff
	return (a & m) | (b & ^m)
}
