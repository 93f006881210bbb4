// Package suites is the server's fixed cipher-suite table: for each
// supported suite id, the key-exchange kind it implies and the MAC/key/IV
// lengths needed to carve up the expanded key_block (RFC 5246 §6.3 / §A.6).
// The suites named here are RSA/DHE_RSA CBC-mode suites, matching the
// distilled policy's key-exchange scope; the record layer that actually
// performs the bulk encryption is an external collaborator and is not
// implemented by this module.
package suites

import "crypto"

// KeyExchangeKind identifies which of the two key-exchange subroutines a
// suite uses.
type KeyExchangeKind uint8

const (
	KeyExchangeRSA KeyExchangeKind = iota + 1
	KeyExchangeDHERSA
)

// CipherSuite is everything the handshake driver needs to know about a
// negotiated suite, short of the bulk cipher/MAC implementations
// themselves.
type CipherSuite struct {
	ID          uint16
	Name        string
	KeyExchange KeyExchangeKind

	// PRFHash is the TLS 1.2 transcript/PRF hash this suite specifies;
	// ignored below TLS 1.2, where the PRF is always MD5+SHA1.
	PRFHash crypto.Hash

	// MACLen, KeyLen, IVLen size the key_block split (RFC 5246 §6.3). A
	// MACLen of 0 would indicate an AEAD suite; none of the suites below
	// are AEAD, so it is always nonzero here.
	MACLen, KeyLen, IVLen int
}

// SHA384 reports whether this suite's PRF hash is SHA-384 rather than the
// TLS 1.2 default of SHA-256, which internal/primitives needs to pick the
// right prf12 instantiation.
func (c *CipherSuite) SHA384() bool {
	return c.PRFHash == crypto.SHA384
}

// CertRequired is always true for the suites this server supports: both
// RSA and DHE_RSA key exchange authenticate with a server certificate.
func (c *CipherSuite) CertRequired() bool { return true }

// SCSV is the TLS_EMPTY_RENEGOTIATION_INFO_SCSV signaling cipher suite
// value (RFC 5746 §3.1) — not a real cipher suite, but a client may list
// it among its cipher_suites to signal secure-renegotiation support
// without sending the extension.
const SCSV uint16 = 0x00ff

// All is the full set of suites this server can negotiate, ID-addressable
// via ByID. Names and ids follow RFC 5246 §A.5/IANA TLS Cipher Suites.
var All = []*CipherSuite{
	{ID: 0x002f, Name: "TLS_RSA_WITH_AES_128_CBC_SHA", KeyExchange: KeyExchangeRSA, PRFHash: crypto.SHA256, MACLen: 20, KeyLen: 16, IVLen: 16},
	{ID: 0x0035, Name: "TLS_RSA_WITH_AES_256_CBC_SHA", KeyExchange: KeyExchangeRSA, PRFHash: crypto.SHA256, MACLen: 20, KeyLen: 32, IVLen: 16},
	{ID: 0x003c, Name: "TLS_RSA_WITH_AES_128_CBC_SHA256", KeyExchange: KeyExchangeRSA, PRFHash: crypto.SHA256, MACLen: 32, KeyLen: 16, IVLen: 16},
	{ID: 0x0033, Name: "TLS_DHE_RSA_WITH_AES_128_CBC_SHA", KeyExchange: KeyExchangeDHERSA, PRFHash: crypto.SHA256, MACLen: 20, KeyLen: 16, IVLen: 16},
	{ID: 0x0039, Name: "TLS_DHE_RSA_WITH_AES_256_CBC_SHA", KeyExchange: KeyExchangeDHERSA, PRFHash: crypto.SHA256, MACLen: 20, KeyLen: 32, IVLen: 16},
	{ID: 0x0067, Name: "TLS_DHE_RSA_WITH_AES_128_CBC_SHA256", KeyExchange: KeyExchangeDHERSA, PRFHash: crypto.SHA256, MACLen: 32, KeyLen: 16, IVLen: 16},
	{ID: 0x006b, Name: "TLS_DHE_RSA_WITH_AES_256_CBC_SHA256", KeyExchange: KeyExchangeDHERSA, PRFHash: crypto.SHA256, MACLen: 32, KeyLen: 32, IVLen: 16},
}

// ByID returns the suite with the given wire id, or nil if this server
// does not support it.
func ByID(id uint16) *CipherSuite {
	for _, s := range All {
		if s.ID == id {
			return s
		}
	}
	return nil
}
