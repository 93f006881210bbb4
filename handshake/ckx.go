package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/kex"
	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/transcript"
	"github.com/mattgray/go-tls-handshake/internal/wire"
	"github.com/mattgray/go-tls-handshake/session"
)

// handleClientKeyExchangeRSA implements §4.4's RSA path: the
// Bleichenbacher-safe decrypt in internal/kex never distinguishes
// decryption failure from a version-check failure, so there is exactly
// one code path here regardless of what the client actually sent.
func handleClientKeyExchangeRSA(c *Conn, st stateAwaitClientKeyExchangeRSA, raw []byte) ([]Signal, error) {
	ckx, err := wire.DecodeClientKeyExchange(raw)
	if err != nil {
		return nil, fsmerrors.UnexpectedMessage("malformed ClientKeyExchange: ", err.Error())
	}

	pms, err := kex.RSAPreMasterSecret(c.Config.rand(), c.Config.Certificate.PrivateKey, ckx.Data, st.params.ClientVersion)
	if err != nil {
		return nil, fsmerrors.HandshakeFailure("RSA premaster secret recovery failed: ", err.Error())
	}

	return finishKeyExchange(c, st.epoch, st.params, st.log, st.fh, pms, raw)
}

// handleClientKeyExchangeDHERSA implements §4.4's DHE_RSA path: the
// client's public share is validated by internal/primitives' DHSharedSecret
// (reached through kex.DHEPreMasterSecret), and a degenerate or
// out-of-range share is rejected with insufficient_security.
func handleClientKeyExchangeDHERSA(c *Conn, st stateAwaitClientKeyExchangeDHERSA, raw []byte) ([]Signal, error) {
	ckx, err := wire.DecodeClientKeyExchange(raw)
	if err != nil {
		return nil, fsmerrors.UnexpectedMessage("malformed ClientKeyExchange: ", err.Error())
	}

	pms, err := kex.DHEPreMasterSecret(st.share, ckx.Data)
	if err != nil {
		c.Config.hooks().OnCryptoError(c.remoteAddr, err)
		return nil, fsmerrors.InsufficientSecurity("DHE public share rejected: ", err.Error())
	}

	return finishKeyExchange(c, st.epoch, st.params, st.log, st.fh, pms, raw)
}

// finishKeyExchange is the tail shared by both key-exchange kinds: derive
// the master secret and key block, append the ClientKeyExchange to the
// transcript, and move to stateAwaitClientChangeCipherSpec.
func finishKeyExchange(c *Conn, epoch *session.Epoch, params *session.Params, log *transcript.Log, fh *primitives.FinishedHash, pms []byte, raw []byte) ([]Signal, error) {
	suite := suites.ByID(epoch.CipherSuite)
	if suite == nil {
		panic("handshake: epoch carries an unconfigured cipher suite id")
	}

	masterSecret, serverWrite, clientRead := kex.DeriveKeys(epoch.ProtocolVersion, suite, pms, params.ClientRandom[:], params.ServerRandom[:])
	epoch.MasterSecret = masterSecret

	log.Append(raw)

	c.Machina = stateAwaitClientChangeCipherSpec{
		epoch:       epoch,
		serverWrite: serverWrite,
		clientRead:  clientRead,
		log:         log,
		fh:          fh,
	}
	return nil, nil
}
