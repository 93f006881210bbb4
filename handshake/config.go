package handshake

import (
	"crypto"
	crand "crypto/rand"
	"crypto/rsa"
	"io"

	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/wire"
	"github.com/mattgray/go-tls-handshake/trace"
)

// CertificateAndKey is a server certificate chain and the private key
// matching its leaf, the only form of server authentication this driver
// performs (certificate parsing itself is an external collaborator's
// job; the chain is accepted here as already-encoded DER).
type CertificateAndKey struct {
	Chain      [][]byte // leaf first
	PrivateKey *rsa.PrivateKey
}

// Config is the immutable policy a Conn is driven under. It is safe to
// share across many Conns, matching the read-mostly convention of the
// teacher's own top-level Config type: nothing here is mutated once a
// Conn starts using it.
type Config struct {
	// ProtocolVersions is the set of versions this server will negotiate,
	// in any order; negotiation picks the highest member not exceeding the
	// client's offer.
	ProtocolVersions []wire.Version

	// Ciphers is the server's supported cipher suites. Their order has no
	// effect: cipher selection is client-order precedence per §4.2, and the
	// ServerKeyExchange signature hash is chosen from Hashes alone.
	Ciphers []*suites.CipherSuite

	// Hashes is the server's preferred TLS 1.2 signature hash order, used
	// to pick a ServerKeyExchange signature hash from the client's
	// signature_algorithms extension.
	Hashes []crypto.Hash

	// Certificate is the server's sole identity. Required whenever any
	// configured cipher suite needs one -- which, for RSA and DHE_RSA, is
	// always.
	Certificate *CertificateAndKey

	// SecureRenegotiation, if true, requires every initial ClientHello to
	// carry either the SCSV cipher id or an empty renegotiation_info
	// extension (RFC 5746 §3.2/§4.1).
	SecureRenegotiation bool

	// UseRenegotiation, if true, accepts a ClientHello arriving while the
	// connection is Established; otherwise that ClientHello is fatal.
	UseRenegotiation bool

	// Rand is the source of randomness for server randoms, ephemeral DH
	// keys, RSA signing, and PMS substitution. Defaults to
	// crypto/rand.Reader if nil.
	Rand io.Reader

	// Hooks receives lifecycle and log events. Defaults to trace.Default()
	// if nil.
	Hooks trace.Hook
}

func (c *Config) rand() io.Reader {
	if c.Rand != nil {
		return c.Rand
	}
	return crand.Reader
}

func (c *Config) hooks() trace.Hook {
	if c.Hooks != nil {
		return c.Hooks
	}
	return trace.Default()
}

// Validate checks the structural preconditions the rest of the package
// assumes hold: at least one version and one cipher configured, and a
// certificate present whenever a configured cipher requires one.
func (c *Config) Validate() error {
	var errs []error
	if len(c.ProtocolVersions) == 0 {
		errs = append(errs, fsmerrors.HandshakeFailure("no protocol versions configured"))
	}
	if len(c.Ciphers) == 0 {
		errs = append(errs, fsmerrors.HandshakeFailure("no cipher suites configured"))
	}
	for _, s := range c.Ciphers {
		if s.CertRequired() && c.Certificate == nil {
			errs = append(errs, fsmerrors.HandshakeFailure("cipher suite ", s.Name, " requires a server certificate but none is configured"))
			break
		}
	}
	return fsmerrors.Combine(errs...)
}
