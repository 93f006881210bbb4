package kex

import (
	"io"
	"math/big"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// DHEServerShare holds the server's ephemeral keypair for one handshake's
// DHE_RSA exchange, carried in the AwaitClientKeyExchange_DHE_RSA state
// until the client's share arrives.
type DHEServerShare struct {
	KeyPair *primitives.DHKeyPair
}

// GenerateDHEServerShare draws a fresh keypair over the fixed group and
// returns both the keypair (to be held pending ClientKeyExchange) and the
// wire-ready params to place in ServerKeyExchange.
func GenerateDHEServerShare(rand io.Reader) (*DHEServerShare, *wire.ServerDHParams, error) {
	kp, err := primitives.GenerateDHKeyPair(rand, primitives.Group2)
	if err != nil {
		return nil, nil, err
	}
	return &DHEServerShare{KeyPair: kp}, &wire.ServerDHParams{
		P:  kp.Group.P,
		G:  kp.Group.G,
		Ys: kp.Public,
	}, nil
}

// DHEPreMasterSecret computes the shared secret from the server's held
// keypair and the client's public share, carried as a big-endian integer
// in the ClientKeyExchange payload. Returns primitives.ErrInvalidDHShare
// for a degenerate or out-of-range share, which the caller maps to
// insufficient_security.
func DHEPreMasterSecret(share *DHEServerShare, clientPublic []byte) ([]byte, error) {
	peer := new(big.Int).SetBytes(clientPublic)
	return share.KeyPair.DHSharedSecret(peer)
}
