package primitives_test

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

func TestDecryptPreMasterSecret_ValidCiphertext(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pms := make([]byte, primitives.PreMasterSecretLength)
	_, err = rand.Read(pms)
	require.NoError(t, err)
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, pms)
	require.NoError(t, err)

	fallback := make([]byte, primitives.PreMasterSecretLength)
	_, err = rand.Read(fallback)
	require.NoError(t, err)

	out, err := primitives.DecryptPreMasterSecret(rand.Reader, priv, ciphertext, fallback)
	require.NoError(t, err)
	require.Equal(t, pms, out)
}

func TestDecryptPreMasterSecret_MalformedCiphertextReturnsFallback(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	garbage := make([]byte, priv.PublicKey.Size())
	_, err = rand.Read(garbage)
	require.NoError(t, err)

	fallback := make([]byte, primitives.PreMasterSecretLength)
	_, err = rand.Read(fallback)
	require.NoError(t, err)

	out, err := primitives.DecryptPreMasterSecret(rand.Reader, priv, garbage, fallback)
	require.NoError(t, err, "DecryptPKCS1v15SessionKey never surfaces a decrypt error")
	require.Equal(t, fallback, out)
}

func TestDecryptPreMasterSecret_RejectsWrongFallbackLength(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = primitives.DecryptPreMasterSecret(rand.Reader, priv, []byte{1, 2, 3}, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestSignPKCS1v15_ProducesVerifiableSignature(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := primitives.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	require.NoError(t, err)
	require.NoError(t, rsa.VerifyPKCS1v15(&priv.PublicKey, crypto.SHA256, digest[:], sig))
}
