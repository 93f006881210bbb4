package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/kex"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/transcript"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// buildFirstFlight assembles the server's first flight (§4.3): ServerHello,
// Certificate, an optional DHE_RSA ServerKeyExchange, and ServerHelloDone,
// appends each to log in order, and returns them as a single
// RecordHandshake signal plus (for DHE_RSA) the ephemeral share the driver
// must hold until ClientKeyExchange arrives.
func buildFirstFlight(cfg *Config, clientHello *wire.ClientHello, version wire.Version, suite *suites.CipherSuite, clientRandom, serverRandom [32]byte, renegValue []byte, log *transcript.Log) ([]Signal, *kex.DHEServerShare, error) {
	var flight []byte

	helloMsg := &wire.ServerHello{
		Version:           version,
		Random:            serverRandom,
		CipherSuite:       suite.ID,
		RenegotiationInfo: renegValue,
		SendEmptyHostName: clientHello.HasServerName,
	}
	helloBytes, err := helloMsg.Marshal()
	if err != nil {
		return nil, nil, fsmerrors.HandshakeFailure("encoding ServerHello: ", err.Error())
	}
	log.Append(helloBytes)
	flight = append(flight, helloBytes...)

	certMsg := &wire.Certificate{Chain: cfg.Certificate.Chain}
	certBytes, err := certMsg.Marshal()
	if err != nil {
		return nil, nil, fsmerrors.HandshakeFailure("encoding Certificate: ", err.Error())
	}
	log.Append(certBytes)
	flight = append(flight, certBytes...)

	var share *kex.DHEServerShare
	if suite.KeyExchange == suites.KeyExchangeDHERSA {
		var params *wire.ServerDHParams
		share, params, err = kex.GenerateDHEServerShare(cfg.rand())
		if err != nil {
			return nil, nil, fsmerrors.HandshakeFailure("generating DHE share: ", err.Error())
		}

		sigAlg, sigHash, err := kex.SelectSignatureHash(clientHello.SignatureAlgorithms, cfg.Hashes)
		if err != nil {
			return nil, nil, fsmerrors.HandshakeFailure("selecting ServerKeyExchange signature hash: ", err.Error())
		}

		skxMsg, err := kex.SignServerKeyExchange(cfg.rand(), cfg.Certificate.PrivateKey, uint16(version), clientRandom, serverRandom, params, sigAlg, sigHash)
		if err != nil {
			return nil, nil, fsmerrors.HandshakeFailure("signing ServerKeyExchange: ", err.Error())
		}
		skxBytes, err := skxMsg.Marshal()
		if err != nil {
			return nil, nil, fsmerrors.HandshakeFailure("encoding ServerKeyExchange: ", err.Error())
		}
		log.Append(skxBytes)
		flight = append(flight, skxBytes...)
	}

	doneBytes, _ := (&wire.ServerHelloDone{}).Marshal()
	log.Append(doneBytes)
	flight = append(flight, doneBytes...)

	return []Signal{RecordHandshake{Bytes: flight}}, share, nil
}
