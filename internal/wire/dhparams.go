package wire

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
)

// ServerDHParams is the server's Diffie-Hellman share as carried in
// ServerKeyExchange (RFC 5246 §7.4.3): ServerDHParams plus a signature over
// client_random || server_random || ServerDHParams.
type ServerDHParams struct {
	P, G, Ys *big.Int
}

func addMPInt(b *cryptobyte.Builder, n *big.Int) {
	bytes := n.Bytes()
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(bytes)
	})
}

// Encode returns the wire encoding of the DH params only (no signature),
// which doubles as the portion of the ServerKeyExchange payload that gets
// hashed/signed.
func (p *ServerDHParams) Encode() []byte {
	var b cryptobyte.Builder
	addMPInt(&b, p.P)
	addMPInt(&b, p.G)
	addMPInt(&b, p.Ys)
	out, _ := b.Bytes() // a Builder over plain byte slices never errors
	return out
}

// ServerKeyExchangeDHE is the DHE_RSA ServerKeyExchange message: the DH
// params followed by the "digitally signed" envelope over
// client_random||server_random||params (RFC 5246 §7.4.3).
type ServerKeyExchangeDHE struct {
	Params ServerDHParams

	// HasSigAlg is true for TLS 1.2, which prefixes the signature with the
	// (hash, signature) identifier that was used; TLS 1.0/1.1 omit it.
	HasSigAlg bool
	SigAlg    SigAndHash
	Signature []byte
}

func (m *ServerKeyExchangeDHE) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddBytes(m.Params.Encode())
	if m.HasSigAlg {
		b.AddUint8(uint8(m.SigAlg.Hash))
		b.AddUint8(uint8(m.SigAlg.Sig))
	}
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.Signature)
	})
	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return envelope(TypeServerKeyExchange, body), nil
}

func readMPInt(s *cryptobyte.String) (*big.Int, bool) {
	var bytes cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&bytes) || len(bytes) == 0 {
		return nil, false
	}
	return new(big.Int).SetBytes(bytes), true
}

// DecodeServerKeyExchangeDHE parses a full DHE_RSA ServerKeyExchange
// handshake-message envelope. version selects whether the signature is
// expected to be prefixed with a (hash, signature) identifier, mirroring
// the asymmetry the driver itself applies when constructing one
// (SignServerKeyExchange in internal/kex/skx.go).
func DecodeServerKeyExchangeDHE(raw []byte, version Version) (*ServerKeyExchangeDHE, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeServerKeyExchange {
		return nil, fmt.Errorf("tls: expected ServerKeyExchange, got %s", typ)
	}
	s := cryptobyte.String(body)

	m := &ServerKeyExchangeDHE{}
	var ok bool
	if m.Params.P, ok = readMPInt(&s); !ok {
		return nil, fmt.Errorf("tls: malformed ServerKeyExchange: dh_p")
	}
	if m.Params.G, ok = readMPInt(&s); !ok {
		return nil, fmt.Errorf("tls: malformed ServerKeyExchange: dh_g")
	}
	if m.Params.Ys, ok = readMPInt(&s); !ok {
		return nil, fmt.Errorf("tls: malformed ServerKeyExchange: dh_Ys")
	}

	if version >= VersionTLS12 {
		var hash, sig uint8
		if !s.ReadUint8(&hash) || !s.ReadUint8(&sig) {
			return nil, fmt.Errorf("tls: malformed ServerKeyExchange: signature_algorithm")
		}
		m.HasSigAlg = true
		m.SigAlg = SigAndHash{Hash: HashAlgorithm(hash), Sig: SignatureAlgorithm(sig)}
	}

	var sig cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&sig) || !s.Empty() {
		return nil, fmt.Errorf("tls: malformed ServerKeyExchange: signature")
	}
	m.Signature = append([]byte(nil), sig...)

	return m, nil
}

// SignedPayload returns the bytes that get hashed and signed to produce
// Signature: client_random || server_random || ServerDHParams encoding.
func SignedPayload(clientRandom, serverRandom [32]byte, params *ServerDHParams) []byte {
	out := make([]byte, 0, 64+6+2*len(params.P.Bytes()))
	out = append(out, clientRandom[:]...)
	out = append(out, serverRandom[:]...)
	out = append(out, params.Encode()...)
	return out
}
