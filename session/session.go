// Package session holds the data a completed or in-progress handshake
// produces: the negotiated parameters of the hello exchange, and the
// cryptographic epoch -- cipher suite, master secret, and renegotiation
// binding -- that the record layer reads and writes under.
package session

import "crypto/x509"

// Params is what a ClientHello/ServerHello exchange fixes before any key
// material exists: the negotiated protocol version, both hello randoms,
// and the client's advertised legacy version (needed for the RSA
// ClientKeyExchange version check, RFC 5246 §7.4.7.1).
type Params struct {
	ClientVersion uint16 // client_version as advertised in ClientHello.client_version
	Version       uint16 // negotiated protocol version
	ClientRandom  [32]byte
	ServerRandom  [32]byte
}

// Epoch is the set of cryptographic facts a completed handshake commits
// to: the negotiated version/cipher suite and the key material and peer
// identity derived from it. A connection holds exactly one current Epoch;
// a renegotiation produces a new one wholesale rather than mutating the
// old.
type Epoch struct {
	ProtocolVersion uint16
	CipherSuite     uint16
	ServerName      string
	MasterSecret    []byte
	OwnCertificate  [][]byte          // DER chain, leaf first
	PeerCertificate *x509.Certificate // nil: this driver never requests client auth

	// ClientVerifyData and ServerVerifyData are this epoch's own Finished
	// verify_data values, retained as the "previous Finished" binding a
	// subsequent renegotiation's renegotiation_info extension must carry
	// (RFC 5746 §3.1).
	ClientVerifyData []byte
	ServerVerifyData []byte
}

// Wipe overwrites MasterSecret with zeros in place. It does not zero the
// verify_data fields, which are not secret (RFC 5746 explicitly sends them
// on the wire) and are needed to validate the next renegotiation.
func (e *Epoch) Wipe() {
	for i := range e.MasterSecret {
		e.MasterSecret[i] = 0
	}
}
