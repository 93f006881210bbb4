package handshake

import (
	"io"
	"time"

	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/wire"
	"github.com/mattgray/go-tls-handshake/session"
)

func genRandom32(rand io.Reader) ([32]byte, error) {
	var out [32]byte
	_, err := io.ReadFull(rand, out[:])
	return out, err
}

// handleClientHello runs §4.2/§4.7's shared logic: decode, negotiate
// version and cipher, validate the secure-renegotiation binding
// appropriate to whether this is the initial handshake or a
// renegotiation, build a fresh Epoch and Params, and hand off to
// buildFirstFlight. isRenegotiation selects which of those two validation
// paths applies; priorEpoch is the Established epoch being renegotiated
// from (nil on an initial handshake).
func handleClientHello(c *Conn, raw []byte, isRenegotiation bool, priorEpoch *session.Epoch) ([]Signal, error) {
	ch, err := wire.DecodeClientHello(raw)
	if err != nil {
		return nil, fsmerrors.UnexpectedMessage("malformed ClientHello: ", err.Error())
	}

	version, err := negotiateVersion(c.Config, ch.Version)
	if err != nil {
		return nil, err
	}
	suite, err := negotiateCipherSuite(c.Config, ch.CipherSuites)
	if err != nil {
		return nil, err
	}

	serverName := ch.ServerName
	if ch.HasServerName {
		serverName, err = wire.ValidateHostname(ch.ServerName)
		if err != nil {
			return nil, fsmerrors.HandshakeFailure("invalid SNI host_name: ", err.Error())
		}
	}

	var renegValue []byte
	if isRenegotiation {
		if version != wire.Version(priorEpoch.ProtocolVersion) {
			return nil, fsmerrors.HandshakeFailure("renegotiation changed protocol version")
		}
		if !ch.HasRenegotiationInfo || !bytesEqual(ch.RenegotiationInfo, priorEpoch.ClientVerifyData) {
			return nil, fsmerrors.HandshakeFailure("renegotiation secure_renegotiation binding missing or mismatched")
		}
		renegValue = append(append([]byte(nil), priorEpoch.ClientVerifyData...), priorEpoch.ServerVerifyData...)
	} else {
		if ch.HasRenegotiationInfo && len(ch.RenegotiationInfo) != 0 {
			return nil, fsmerrors.HandshakeFailure("non-empty secure_renegotiation extension on initial handshake")
		}
		accepted := (ch.HasRenegotiationInfo && len(ch.RenegotiationInfo) == 0) || hasSCSV(ch.CipherSuites) || !c.Config.SecureRenegotiation
		if !accepted {
			return nil, fsmerrors.HandshakeFailure("secure renegotiation indication required but absent")
		}
		renegValue = []byte{}
	}

	serverRandom, err := genRandom32(c.Config.rand())
	if err != nil {
		return nil, fsmerrors.HandshakeFailure("generating server random: ", err.Error())
	}

	params := &session.Params{
		ClientVersion: uint16(ch.Version),
		Version:       uint16(version),
		ClientRandom:  ch.Random,
		ServerRandom:  serverRandom,
	}
	epoch := &session.Epoch{
		ProtocolVersion: uint16(version),
		CipherSuite:     suite.ID,
		ServerName:      serverName,
		OwnCertificate:  c.Config.Certificate.Chain,
	}

	c.log.Reset()
	log := c.log
	fh := primitives.NewFinishedHash(uint16(version), suite.SHA384())
	log.AddSink(fh)
	log.Append(raw)

	signals, share, err := buildFirstFlight(c.Config, ch, version, suite, params.ClientRandom, params.ServerRandom, renegValue, log)
	if err != nil {
		return nil, err
	}

	if suite.KeyExchange == suites.KeyExchangeDHERSA {
		c.Machina = stateAwaitClientKeyExchangeDHERSA{epoch: epoch, params: params, share: share, log: log, fh: fh}
	} else {
		c.Machina = stateAwaitClientKeyExchangeRSA{epoch: epoch, params: params, log: log, fh: fh}
	}

	c.startedAt = time.Now()
	if isRenegotiation {
		c.Config.hooks().OnDebug("renegotiation started for " + c.remoteAddr)
	} else {
		c.Config.hooks().OnHandshakeStart(c.remoteAddr)
	}
	return signals, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
