package kex

import (
	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/suites"
)

// CryptoContext is the opaque bundle of key material handed to the record
// layer at the ChangeCipherSpec barrier. It is deliberately shaped to the
// record layer's needs (MAC key, bulk key, fixed IV, suite id) rather than
// to any concrete cipher implementation -- actual AEAD/CBC encryption is
// an external collaborator's job (see spec Non-goals).
type CryptoContext struct {
	Suite  *suites.CipherSuite
	MACKey []byte
	Key    []byte
	IV     []byte
}

// DeriveKeys runs the full master-secret and key-block expansion (RFC
// 5246 §8.1, §6.3) and returns the server_write_ctx/client_read_ctx pair
// the driver hands to the record layer, plus the 48-byte master secret
// itself (retained on the Epoch for Finished and for secret wiping on
// Conn.Close).
func DeriveKeys(version uint16, suite *suites.CipherSuite, preMasterSecret, clientRandom, serverRandom []byte) (masterSecret []byte, serverWrite, clientRead *CryptoContext) {
	masterSecret = primitives.MasterSecret(version, suite.SHA384(), preMasterSecret, clientRandom, serverRandom)

	kb := primitives.DeriveKeyBlock(version, suite.SHA384(), masterSecret, clientRandom, serverRandom, primitives.KeyBlockLengths{
		MACLen: suite.MACLen,
		KeyLen: suite.KeyLen,
		IVLen:  suite.IVLen,
	})

	serverWrite = &CryptoContext{Suite: suite, MACKey: kb.ServerMAC, Key: kb.ServerKey, IV: kb.ServerIV}
	clientRead = &CryptoContext{Suite: suite, MACKey: kb.ClientMAC, Key: kb.ClientKey, IV: kb.ClientIV}
	return masterSecret, serverWrite, clientRead
}
