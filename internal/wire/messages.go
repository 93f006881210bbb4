// Package wire implements the pure encode/decode layer for the handshake
// messages, extensions, and auxiliary wire structures this driver needs:
// ClientHello, ServerHello, Certificate, ServerKeyExchange,
// ServerHelloDone, ClientKeyExchange, Finished, ChangeCipherSpec, the
// secure_renegotiation and server_name extensions, DH parameters, and the
// "digitally signed" envelope. It knows nothing about handshake state; it
// only turns bytes into typed messages and back, the way the reference
// pack's RFC-5246-era forks (DrKLO-Telegram__handshake_messages.go,
// WebKit-WebKit__handshake_messages.go) do, but built on
// golang.org/x/crypto/cryptobyte the way the teacher repo's own extension
// codecs are (u_tls_extensions.go).
package wire

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// HandshakeType is the one-octet msg_type field of a handshake message
// header (RFC 5246 §7.4).
type HandshakeType uint8

const (
	TypeClientHello       HandshakeType = 1
	TypeServerHello       HandshakeType = 2
	TypeCertificate       HandshakeType = 11
	TypeServerKeyExchange HandshakeType = 12
	TypeServerHelloDone   HandshakeType = 14
	TypeClientKeyExchange HandshakeType = 16
	TypeFinished          HandshakeType = 20
)

func (t HandshakeType) String() string {
	switch t {
	case TypeClientHello:
		return "ClientHello"
	case TypeServerHello:
		return "ServerHello"
	case TypeCertificate:
		return "Certificate"
	case TypeServerKeyExchange:
		return "ServerKeyExchange"
	case TypeServerHelloDone:
		return "ServerHelloDone"
	case TypeClientKeyExchange:
		return "ClientKeyExchange"
	case TypeFinished:
		return "Finished"
	default:
		return fmt.Sprintf("HandshakeType(%d)", uint8(t))
	}
}

// extension numbers this driver understands (RFC 4366/6066, RFC 5746).
const (
	extServerName          uint16 = 0
	extSignatureAlgorithms uint16 = 13
	extRenegotiationInfo   uint16 = 0xff01
)

// ChangeCipherSpecValue is the one-octet body of a ChangeCipherSpec record.
// It is not a handshake message and carries no header.
const ChangeCipherSpecValue = 0x01

func splitHeader(raw []byte) (HandshakeType, []byte, error) {
	if len(raw) < 4 {
		return 0, nil, fmt.Errorf("tls: handshake message too short (%d bytes)", len(raw))
	}
	length := int(raw[1])<<16 | int(raw[2])<<8 | int(raw[3])
	if len(raw)-4 != length {
		return 0, nil, fmt.Errorf("tls: handshake message length mismatch (header says %d, have %d)", length, len(raw)-4)
	}
	return HandshakeType(raw[0]), raw[4:], nil
}

func envelope(typ HandshakeType, body []byte) []byte {
	out := make([]byte, 4+len(body))
	out[0] = byte(typ)
	out[1] = byte(len(body) >> 16)
	out[2] = byte(len(body) >> 8)
	out[3] = byte(len(body))
	copy(out[4:], body)
	return out
}

// ClientHello is the decoded body of a ClientHello message (RFC 5246
// §7.4.1.2), narrowed to the fields this driver acts on.
type ClientHello struct {
	Raw                []byte
	Version            Version
	Random             [32]byte
	SessionID          []byte
	CipherSuites       []uint16
	CompressionMethods []byte

	HasServerName bool
	ServerName    string

	HasSignatureAlgorithms bool
	SignatureAlgorithms    []SigAndHash

	HasRenegotiationInfo bool
	RenegotiationInfo    []byte
}

// DecodeClientHello parses a full ClientHello handshake-message envelope.
func DecodeClientHello(raw []byte) (*ClientHello, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeClientHello {
		return nil, fmt.Errorf("tls: expected ClientHello, got %s", typ)
	}

	m := &ClientHello{Raw: append([]byte(nil), raw...)}
	s := cryptobyte.String(body)

	var vers uint16
	if !s.ReadUint16(&vers) {
		return nil, fmt.Errorf("tls: malformed ClientHello: version")
	}
	m.Version = Version(vers)

	var random cryptobyte.String
	if !s.ReadBytes((*[]byte)(&random), 32) {
		return nil, fmt.Errorf("tls: malformed ClientHello: random")
	}
	copy(m.Random[:], random)

	if !readUint8LengthPrefixedBytes(&s, &m.SessionID) {
		return nil, fmt.Errorf("tls: malformed ClientHello: session_id")
	}

	var cipherSuites cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&cipherSuites) || len(cipherSuites)%2 != 0 || len(cipherSuites) == 0 {
		return nil, fmt.Errorf("tls: malformed ClientHello: cipher_suites")
	}
	for !cipherSuites.Empty() {
		var id uint16
		if !cipherSuites.ReadUint16(&id) {
			return nil, fmt.Errorf("tls: malformed ClientHello: cipher_suites")
		}
		m.CipherSuites = append(m.CipherSuites, id)
	}

	if !readUint8LengthPrefixedBytes(&s, &m.CompressionMethods) {
		return nil, fmt.Errorf("tls: malformed ClientHello: compression_methods")
	}

	if s.Empty() {
		return m, nil
	}

	var extensions cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&extensions) {
		return nil, fmt.Errorf("tls: malformed ClientHello: extensions")
	}
	for !extensions.Empty() {
		var extType uint16
		var extData cryptobyte.String
		if !extensions.ReadUint16(&extType) || !extensions.ReadUint16LengthPrefixed(&extData) {
			return nil, fmt.Errorf("tls: malformed ClientHello: extension header")
		}
		switch extType {
		case extServerName:
			name, err := parseServerNameExtension(extData)
			if err != nil {
				return nil, err
			}
			m.HasServerName = true
			m.ServerName = name
		case extSignatureAlgorithms:
			algs, err := parseSignatureAlgorithmsExtension(extData)
			if err != nil {
				return nil, err
			}
			m.HasSignatureAlgorithms = true
			m.SignatureAlgorithms = algs
		case extRenegotiationInfo:
			info, err := parseRenegotiationInfoExtension(extData)
			if err != nil {
				return nil, err
			}
			m.HasRenegotiationInfo = true
			m.RenegotiationInfo = info
		default:
			// Unknown extensions are ignored, per RFC 5246 §7.4.1.4.
		}
	}
	return m, nil
}

func readUint8LengthPrefixedBytes(s *cryptobyte.String, out *[]byte) bool {
	var inner cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&inner) {
		return false
	}
	*out = append([]byte(nil), inner...)
	return true
}

// Marshal encodes the ClientHello as a full handshake-message envelope.
// Production code never calls this (the driver only decodes ClientHellos);
// it exists so a synthetic test client (internal/wiretest) can build one
// without duplicating the wire format.
func (m *ClientHello) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16(uint16(m.Version))
	b.AddBytes(m.Random[:])
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.SessionID)
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, id := range m.CipherSuites {
			b.AddUint16(id)
		}
	})
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		if len(m.CompressionMethods) == 0 {
			b.AddUint8(0)
		} else {
			b.AddBytes(m.CompressionMethods)
		}
	})

	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		if m.HasServerName {
			b.AddUint16(extServerName)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				addServerNameExtension(b, m.ServerName)
			})
		}
		if m.HasSignatureAlgorithms {
			b.AddUint16(extSignatureAlgorithms)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				addSignatureAlgorithmsExtension(b, m.SignatureAlgorithms)
			})
		}
		if m.HasRenegotiationInfo {
			b.AddUint16(extRenegotiationInfo)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				addRenegotiationInfoExtension(b, m.RenegotiationInfo)
			})
		}
	})

	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return envelope(TypeClientHello, body), nil
}

// ServerHello is the message this driver emits in response to a
// (re-)ClientHello (RFC 5246 §7.4.1.3).
type ServerHello struct {
	Version           Version
	Random            [32]byte
	CipherSuite       uint16
	RenegotiationInfo []byte // always present; empty on an initial handshake
	SendEmptyHostName bool   // RFC 4366/6066: echo an empty host_name extension
}

// Marshal encodes the ServerHello as a full handshake-message envelope.
func (m *ServerHello) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16(uint16(m.Version))
	b.AddBytes(m.Random[:])
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {}) // session_id: none
	b.AddUint16(m.CipherSuite)
	b.AddUint8(0) // compression_method: null

	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16(extRenegotiationInfo)
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(m.RenegotiationInfo)
			})
		})
		if m.SendEmptyHostName {
			b.AddUint16(extServerName)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {})
		}
	})

	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return envelope(TypeServerHello, body), nil
}

// DecodeServerHello parses a full ServerHello handshake-message envelope.
// Production code never calls this (the driver only emits ServerHellos); it
// exists so a synthetic test client (internal/wiretest) can read one back.
func DecodeServerHello(raw []byte) (*ServerHello, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeServerHello {
		return nil, fmt.Errorf("tls: expected ServerHello, got %s", typ)
	}

	m := &ServerHello{}
	s := cryptobyte.String(body)

	var vers uint16
	if !s.ReadUint16(&vers) {
		return nil, fmt.Errorf("tls: malformed ServerHello: version")
	}
	m.Version = Version(vers)

	var random cryptobyte.String
	if !s.ReadBytes((*[]byte)(&random), 32) {
		return nil, fmt.Errorf("tls: malformed ServerHello: random")
	}
	copy(m.Random[:], random)

	var sessionID []byte
	if !readUint8LengthPrefixedBytes(&s, &sessionID) {
		return nil, fmt.Errorf("tls: malformed ServerHello: session_id")
	}

	if !s.ReadUint16(&m.CipherSuite) {
		return nil, fmt.Errorf("tls: malformed ServerHello: cipher_suite")
	}

	var compressionMethod uint8
	if !s.ReadUint8(&compressionMethod) {
		return nil, fmt.Errorf("tls: malformed ServerHello: compression_method")
	}

	if s.Empty() {
		return m, nil
	}

	var extensions cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&extensions) {
		return nil, fmt.Errorf("tls: malformed ServerHello: extensions")
	}
	for !extensions.Empty() {
		var extType uint16
		var extData cryptobyte.String
		if !extensions.ReadUint16(&extType) || !extensions.ReadUint16LengthPrefixed(&extData) {
			return nil, fmt.Errorf("tls: malformed ServerHello: extension header")
		}
		switch extType {
		case extServerName:
			m.SendEmptyHostName = true
		case extRenegotiationInfo:
			info, err := parseRenegotiationInfoExtension(extData)
			if err != nil {
				return nil, err
			}
			m.RenegotiationInfo = info
		}
	}
	return m, nil
}

// Certificate carries the server's certificate chain, leaf first.
type Certificate struct {
	Chain [][]byte
}

func (m *Certificate) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, cert := range m.Chain {
			b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(cert)
			})
		}
	})
	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return envelope(TypeCertificate, body), nil
}

// DecodeCertificate parses a full Certificate handshake-message envelope.
func DecodeCertificate(raw []byte) (*Certificate, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeCertificate {
		return nil, fmt.Errorf("tls: expected Certificate, got %s", typ)
	}
	s := cryptobyte.String(body)
	var certList cryptobyte.String
	if !s.ReadUint24LengthPrefixed(&certList) || !s.Empty() {
		return nil, fmt.Errorf("tls: malformed Certificate")
	}
	m := &Certificate{}
	for !certList.Empty() {
		var cert cryptobyte.String
		if !certList.ReadUint24LengthPrefixed(&cert) {
			return nil, fmt.Errorf("tls: malformed Certificate: certificate_list entry")
		}
		m.Chain = append(m.Chain, append([]byte(nil), cert...))
	}
	return m, nil
}

// ServerHelloDone carries no data.
type ServerHelloDone struct{}

func (ServerHelloDone) Marshal() ([]byte, error) {
	return envelope(TypeServerHelloDone, nil), nil
}

// DecodeServerHelloDone checks that raw is a well-formed, empty
// ServerHelloDone handshake-message envelope.
func DecodeServerHelloDone(raw []byte) error {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return err
	}
	if typ != TypeServerHelloDone {
		return fmt.Errorf("tls: expected ServerHelloDone, got %s", typ)
	}
	if len(body) != 0 {
		return fmt.Errorf("tls: malformed ServerHelloDone: non-empty body")
	}
	return nil
}

// ClientKeyExchange carries a single u16-length-prefixed opaque blob, whose
// interpretation (an RSA ciphertext or a DH public value) depends on the
// negotiated key-exchange kind, which the wire layer does not know.
type ClientKeyExchange struct {
	Raw  []byte
	Data []byte
}

func DecodeClientKeyExchange(raw []byte) (*ClientKeyExchange, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeClientKeyExchange {
		return nil, fmt.Errorf("tls: expected ClientKeyExchange, got %s", typ)
	}
	s := cryptobyte.String(body)
	var data cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&data) || !s.Empty() {
		return nil, fmt.Errorf("tls: malformed ClientKeyExchange")
	}
	return &ClientKeyExchange{Raw: append([]byte(nil), raw...), Data: append([]byte(nil), data...)}, nil
}

// Marshal encodes the ClientKeyExchange as a full handshake-message
// envelope. Like ClientHello.Marshal, this exists only for the test client.
func (m *ClientKeyExchange) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.Data)
	})
	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return envelope(TypeClientKeyExchange, body), nil
}

// Finished carries the 12-octet verify_data (RFC 5246 §7.4.9).
type Finished struct {
	Raw        []byte
	VerifyData []byte
}

const FinishedLength = 12

func DecodeFinished(raw []byte) (*Finished, error) {
	typ, body, err := splitHeader(raw)
	if err != nil {
		return nil, err
	}
	if typ != TypeFinished {
		return nil, fmt.Errorf("tls: expected Finished, got %s", typ)
	}
	if len(body) != FinishedLength {
		return nil, fmt.Errorf("tls: malformed Finished: want %d bytes, got %d", FinishedLength, len(body))
	}
	return &Finished{Raw: append([]byte(nil), raw...), VerifyData: append([]byte(nil), body...)}, nil
}

func (m *Finished) Marshal() ([]byte, error) {
	if len(m.VerifyData) != FinishedLength {
		return nil, fmt.Errorf("tls: verify_data must be %d bytes, got %d", FinishedLength, len(m.VerifyData))
	}
	return envelope(TypeFinished, m.VerifyData), nil
}

// SplitHandshakeMessages walks a byte string containing zero or more
// concatenated handshake-message envelopes (as buildFirstFlight emits in a
// single RecordHandshake signal) and returns the individual envelopes.
func SplitHandshakeMessages(raw []byte) ([][]byte, error) {
	var out [][]byte
	for len(raw) > 0 {
		if len(raw) < 4 {
			return nil, fmt.Errorf("tls: trailing %d bytes too short for a handshake header", len(raw))
		}
		length := int(raw[1])<<16 | int(raw[2])<<8 | int(raw[3])
		total := 4 + length
		if total > len(raw) {
			return nil, fmt.Errorf("tls: handshake message length %d exceeds remaining %d bytes", total, len(raw))
		}
		out = append(out, raw[:total])
		raw = raw[total:]
	}
	return out, nil
}

// PeekHandshakeType reports the message type of a raw handshake-message
// envelope without fully decoding its body, so the driver can dispatch on
// (state, message kind) before committing to a specific decoder.
func PeekHandshakeType(raw []byte) (HandshakeType, error) {
	typ, _, err := splitHeader(raw)
	return typ, err
}
