package primitives_test

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

func TestSignatureDigest_TLS10UsesMD5SHA1(t *testing.T) {
	digest, hash := primitives.SignatureDigest(0x0301, crypto.SHA256, []byte("payload"))
	require.Equal(t, crypto.MD5SHA1, hash)
	require.Len(t, digest, 16+20)
}

func TestSignatureDigest_TLS12UsesNegotiatedHash(t *testing.T) {
	digest, hash := primitives.SignatureDigest(0x0303, crypto.SHA256, []byte("payload"))
	require.Equal(t, crypto.SHA256, hash)
	require.Len(t, digest, crypto.SHA256.Size())
}
