package primitives_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

func TestGenerateDHKeyPair_PublicInRange(t *testing.T) {
	kp, err := primitives.GenerateDHKeyPair(rand.Reader, primitives.Group2)
	require.NoError(t, err)
	require.Equal(t, 1, kp.Public.Sign())
	require.Equal(t, -1, kp.Public.Cmp(primitives.Group2.P))
}

func TestDHSharedSecret_BothSidesAgree(t *testing.T) {
	a, err := primitives.GenerateDHKeyPair(rand.Reader, primitives.Group2)
	require.NoError(t, err)
	b, err := primitives.GenerateDHKeyPair(rand.Reader, primitives.Group2)
	require.NoError(t, err)

	secretA, err := a.DHSharedSecret(b.Public)
	require.NoError(t, err)
	secretB, err := b.DHSharedSecret(a.Public)
	require.NoError(t, err)
	require.Equal(t, secretA, secretB)
	require.Len(t, secretA, (primitives.Group2.P.BitLen()+7)/8)
}

func TestDHSharedSecret_RejectsDegenerateShares(t *testing.T) {
	kp, err := primitives.GenerateDHKeyPair(rand.Reader, primitives.Group2)
	require.NoError(t, err)

	pMinusOne := new(big.Int).Sub(primitives.Group2.P, big.NewInt(1))

	for _, peer := range []*big.Int{big.NewInt(0), big.NewInt(1), pMinusOne, primitives.Group2.P} {
		_, err := kp.DHSharedSecret(peer)
		require.ErrorIs(t, err, primitives.ErrInvalidDHShare)
	}
}
