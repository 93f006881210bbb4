package primitives

import (
	"crypto"
	"crypto/rsa"
	"io"
)

// PreMasterSecretLength is the fixed length of an RSA-encrypted premaster
// secret: a 2-byte client_version followed by 46 random bytes (RFC 5246
// §7.4.7.1).
const PreMasterSecretLength = 48

// DecryptPreMasterSecret recovers the premaster secret from an RSA
// PKCS#1 v1.5-encrypted ClientKeyExchange payload, guarding against the
// Bleichenbacher million-message attack the way rsa.DecryptPKCS1v15SessionKey
// does: on any padding or length failure it silently substitutes
// randomBytes (which the caller must have already filled with
// PreMasterSecretLength random bytes) rather than returning an error,
// so every code path -- success or failure -- takes the same time and
// produces a same-shaped secret.
//
// The caller is responsible for the version check against clientVersion
// (RFC 5246 §7.4.7.1): done here it would leak a timing/branch signal, so
// it is done by the caller in constant time alongside the rest of key
// derivation instead.
func DecryptPreMasterSecret(rand io.Reader, priv *rsa.PrivateKey, ciphertext []byte, randomBytes []byte) ([]byte, error) {
	if len(randomBytes) != PreMasterSecretLength {
		return nil, errBadRandomLength
	}
	preMasterSecret := make([]byte, PreMasterSecretLength)
	copy(preMasterSecret, randomBytes)

	// DecryptPKCS1v15SessionKey overwrites preMasterSecret in place only on
	// success, leaving our random fallback intact otherwise. It reports no
	// padding failure (to avoid a Bleichenbacher oracle); the only errors it
	// returns are for a ciphertext of the wrong length or out of range for
	// the key, which also leave the fallback intact. We therefore never
	// propagate its error.
	_ = rsa.DecryptPKCS1v15SessionKey(rand, priv, ciphertext, preMasterSecret)
	return preMasterSecret, nil
}

var errBadRandomLength = rsaError("primitives: randomBytes must be PreMasterSecretLength bytes")

type rsaError string

func (e rsaError) Error() string { return string(e) }

// SignPKCS1v15 signs digest (already hashed with hashFunc) with priv, for
// use in a ServerKeyExchange's "digitally signed" envelope.
func SignPKCS1v15(rand io.Reader, priv *rsa.PrivateKey, hashFunc crypto.Hash, digest []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand, priv, hashFunc, digest)
}
