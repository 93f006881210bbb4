package kex_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/kex"
	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

func genKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv
}

// A genuine ciphertext with the correct embedded client_version decrypts
// to exactly the premaster secret the client encrypted.
func TestRSAPreMasterSecret_Valid(t *testing.T) {
	priv := genKey(t)

	pms := make([]byte, primitives.PreMasterSecretLength)
	pms[0], pms[1] = 0x03, 0x03 // TLS 1.2
	_, err := rand.Read(pms[2:])
	require.NoError(t, err)

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, pms)
	require.NoError(t, err)

	out, err := kex.RSAPreMasterSecret(rand.Reader, priv, ciphertext, 0x0303)
	require.NoError(t, err)
	require.Equal(t, pms, out)
}

// A syntactically valid ciphertext whose embedded version does not match
// client_version never errors -- it silently substitutes fresh randomness,
// so the result differs from what was encrypted but is still well-formed.
func TestRSAPreMasterSecret_WrongVersionNoError(t *testing.T) {
	priv := genKey(t)

	pms := make([]byte, primitives.PreMasterSecretLength)
	pms[0], pms[1] = 0x03, 0x01 // TLS 1.0, client claims TLS 1.2
	_, err := rand.Read(pms[2:])
	require.NoError(t, err)

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, pms)
	require.NoError(t, err)

	out, err := kex.RSAPreMasterSecret(rand.Reader, priv, ciphertext, 0x0303)
	require.NoError(t, err)
	require.Len(t, out, primitives.PreMasterSecretLength)
	require.NotEqual(t, pms, out)
}

// Garbage ciphertext that fails to decrypt at all is indistinguishable
// from a version mismatch: still no error, still a well-formed secret.
func TestRSAPreMasterSecret_MalformedCiphertextNoError(t *testing.T) {
	priv := genKey(t)

	garbage := make([]byte, priv.PublicKey.Size())
	_, err := rand.Read(garbage)
	require.NoError(t, err)

	out, err := kex.RSAPreMasterSecret(rand.Reader, priv, garbage, 0x0303)
	require.NoError(t, err)
	require.Len(t, out, primitives.PreMasterSecretLength)
}

// Two calls against the same malformed ciphertext must not produce the
// same output -- the random fallback has to actually be random each call,
// or a Bleichenbacher oracle reopens via a different side channel.
func TestRSAPreMasterSecret_MalformedCiphertextVariesPerCall(t *testing.T) {
	priv := genKey(t)

	garbage := make([]byte, priv.PublicKey.Size())
	_, err := rand.Read(garbage)
	require.NoError(t, err)

	out1, err := kex.RSAPreMasterSecret(rand.Reader, priv, garbage, 0x0303)
	require.NoError(t, err)
	out2, err := kex.RSAPreMasterSecret(rand.Reader, priv, garbage, 0x0303)
	require.NoError(t, err)
	require.NotEqual(t, out1, out2)
}
