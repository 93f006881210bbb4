package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// negotiateVersion picks the highest version in cfg.ProtocolVersions not
// exceeding clientVersion, failing KindProtocolVersion if none qualifies.
func negotiateVersion(cfg *Config, clientVersion wire.Version) (wire.Version, error) {
	var best wire.Version
	found := false
	for _, v := range cfg.ProtocolVersions {
		if v <= clientVersion && (!found || v > best) {
			best = v
			found = true
		}
	}
	if !found {
		return 0, fsmerrors.ProtocolVersion("no configured protocol version is <= client offer ", clientVersion.String())
	}
	return best, nil
}

// negotiateCipherSuite picks the first id in clientCiphers (client-order
// precedence, per §4.2 step 3) that names a suite in cfg.Ciphers.
func negotiateCipherSuite(cfg *Config, clientCiphers []uint16) (*suites.CipherSuite, error) {
	configured := make(map[uint16]*suites.CipherSuite, len(cfg.Ciphers))
	for _, s := range cfg.Ciphers {
		configured[s.ID] = s
	}
	for _, id := range clientCiphers {
		if s, ok := configured[id]; ok {
			return s, nil
		}
	}
	return nil, fsmerrors.HandshakeFailure("no cipher suite in common with client offer")
}

// hasSCSV reports whether clientCiphers contains the secure-renegotiation
// signaling value (RFC 5746 §3.1).
func hasSCSV(clientCiphers []uint16) bool {
	for _, id := range clientCiphers {
		if id == suites.SCSV {
			return true
		}
	}
	return false
}
