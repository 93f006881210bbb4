// Package wiretest is a minimal in-memory stand-in for a well-behaved TLS
// client and its record layer, used to drive the handshake package through
// a complete exchange in tests without a real socket or a second TLS
// implementation. It is test scaffolding, not a protocol implementation:
// it knows just enough of the wire format and the same internal crypto
// packages the driver uses to complete a handshake and check the result.
package wiretest

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"

	"github.com/mattgray/go-tls-handshake/handshake"
	"github.com/mattgray/go-tls-handshake/internal/kex"
	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/transcript"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// Hello describes the ClientHello a test wants to send. Extension fields
// left at their zero value omit the corresponding extension, except
// RenegotiationInfo: a nil slice omits it, a non-nil (possibly empty) slice
// sends it.
type Hello struct {
	Version             wire.Version
	CipherSuites        []uint16
	ServerName          string
	SignatureAlgorithms []wire.SigAndHash
	RenegotiationInfo   []byte
}

// BuildClientHello encodes h as a full ClientHello handshake message,
// drawing a fresh client random from rand.
func BuildClientHello(rand io.Reader, h Hello) (clientRandom [32]byte, raw []byte, err error) {
	if _, err = io.ReadFull(rand, clientRandom[:]); err != nil {
		return clientRandom, nil, err
	}
	msg := &wire.ClientHello{
		Version:      h.Version,
		Random:       clientRandom,
		CipherSuites: h.CipherSuites,
	}
	if h.ServerName != "" {
		msg.HasServerName = true
		msg.ServerName = h.ServerName
	}
	if h.SignatureAlgorithms != nil {
		msg.HasSignatureAlgorithms = true
		msg.SignatureAlgorithms = h.SignatureAlgorithms
	}
	if h.RenegotiationInfo != nil {
		msg.HasRenegotiationInfo = true
		msg.RenegotiationInfo = h.RenegotiationInfo
	}
	raw, err = msg.Marshal()
	return clientRandom, raw, err
}

// Flight is the server's first flight (§4.3), decoded back into its
// individual messages plus the raw envelopes in wire order, so a caller can
// feed them into its own transcript in the exact sequence the driver fed
// its own.
type Flight struct {
	ServerHello       *wire.ServerHello
	Certificate       *wire.Certificate
	ServerKeyExchange *wire.ServerKeyExchangeDHE // nil for the RSA key-exchange kind
	Raw               [][]byte
}

// ParseFlight splits a RecordHandshake signal's concatenated bytes back
// into ServerHello/Certificate/[ServerKeyExchange]/ServerHelloDone and
// decodes each.
func ParseFlight(raw []byte) (*Flight, error) {
	msgs, err := wire.SplitHandshakeMessages(raw)
	if err != nil {
		return nil, err
	}
	if len(msgs) < 3 {
		return nil, fmt.Errorf("wiretest: first flight has only %d messages", len(msgs))
	}

	f := &Flight{Raw: msgs}
	f.ServerHello, err = wire.DecodeServerHello(msgs[0])
	if err != nil {
		return nil, fmt.Errorf("wiretest: ServerHello: %w", err)
	}
	f.Certificate, err = wire.DecodeCertificate(msgs[1])
	if err != nil {
		return nil, fmt.Errorf("wiretest: Certificate: %w", err)
	}

	last := msgs[len(msgs)-1]
	if err := wire.DecodeServerHelloDone(last); err != nil {
		return nil, fmt.Errorf("wiretest: ServerHelloDone: %w", err)
	}

	if len(msgs) == 4 {
		f.ServerKeyExchange, err = wire.DecodeServerKeyExchangeDHE(msgs[2], f.ServerHello.Version)
		if err != nil {
			return nil, fmt.Errorf("wiretest: ServerKeyExchange: %w", err)
		}
	} else if len(msgs) != 3 {
		return nil, fmt.Errorf("wiretest: first flight has an unexpected %d messages", len(msgs))
	}
	return f, nil
}

// LeafPublicKey parses the leaf (first) certificate of a Certificate
// message and returns its RSA public key.
func LeafPublicKey(cert *wire.Certificate) (*rsa.PublicKey, error) {
	if len(cert.Chain) == 0 {
		return nil, fmt.Errorf("wiretest: empty certificate chain")
	}
	leaf, err := x509.ParseCertificate(cert.Chain[0])
	if err != nil {
		return nil, err
	}
	pub, ok := leaf.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("wiretest: leaf certificate key is %T, not RSA", leaf.PublicKey)
	}
	return pub, nil
}

// Transcript mirrors the driver's own internal/transcript.Log plus
// FinishedHash, kept on the client side of this in-memory harness so the
// client's verify_data can be computed and the server's checked against an
// independently accumulated transcript, the way a real peer would.
type Transcript struct {
	log *transcript.Log
	fh  *primitives.FinishedHash
}

// NewTranscript starts a Transcript for the negotiated version and suite,
// and immediately feeds it every message already exchanged (the
// ClientHello and the server's first flight, in order).
func NewTranscript(version wire.Version, suite *suites.CipherSuite, already [][]byte) *Transcript {
	t := &Transcript{
		log: &transcript.Log{},
		fh:  primitives.NewFinishedHash(uint16(version), suite.SHA384()),
	}
	t.log.AddSink(t.fh)
	for _, msg := range already {
		t.log.Append(msg)
	}
	return t
}

// Append feeds one more exchanged message into the transcript.
func (t *Transcript) Append(msg []byte) { t.log.Append(msg) }

// ClientVerifyData and ServerVerifyData compute this transcript's two
// Finished verify_data values, mirroring handshake/finished.go's use of the
// same FinishedHash methods on the driver side.
func (t *Transcript) ClientVerifyData(masterSecret []byte) []byte { return t.fh.ClientVerifyData(masterSecret) }
func (t *Transcript) ServerVerifyData(masterSecret []byte) []byte { return t.fh.ServerVerifyData(masterSecret) }

// RSAPreMasterSecret builds the 48-byte RFC 5246 §7.4.7.1 premaster secret
// (a client_version field followed by 46 random bytes) and its RSA
// PKCS#1 v1.5 encryption under pub, for a ClientKeyExchange body. Tests
// exercising the Bleichenbacher trap pass a versionOverride different from
// the version actually offered to produce a premaster secret the server
// must silently reject without a distinguishable error.
func RSAPreMasterSecret(rand io.Reader, pub *rsa.PublicKey, versionOverride wire.Version) (pms, ciphertext []byte, err error) {
	pms = make([]byte, primitives.PreMasterSecretLength)
	pms[0] = byte(versionOverride >> 8)
	pms[1] = byte(versionOverride)
	if _, err := io.ReadFull(rand, pms[2:]); err != nil {
		return nil, nil, err
	}
	ciphertext, err = rsa.EncryptPKCS1v15(rand, pub, pms)
	if err != nil {
		return nil, nil, err
	}
	return pms, ciphertext, nil
}

// DHEPreMasterSecret computes the client half of a DHE_RSA key exchange: a
// fresh ephemeral keypair over the server's advertised group, the resulting
// public share to send back, and the shared secret derived against the
// server's share.
func DHEPreMasterSecret(rand io.Reader, serverParams *wire.ServerDHParams) (pms, clientPublic []byte, err error) {
	group := &primitives.Group{P: serverParams.P, G: serverParams.G}
	kp, err := primitives.GenerateDHKeyPair(rand, group)
	if err != nil {
		return nil, nil, err
	}
	pms, err = kp.DHSharedSecret(serverParams.Ys)
	if err != nil {
		return nil, nil, err
	}
	return pms, kp.Public.Bytes(), nil
}

// BuildClientKeyExchange wraps an opaque exchange value (an RSA ciphertext
// or a raw DH public share) in a ClientKeyExchange handshake-message
// envelope.
func BuildClientKeyExchange(data []byte) ([]byte, error) {
	return (&wire.ClientKeyExchange{Data: data}).Marshal()
}

// DeriveKeys re-derives the master secret and both CryptoContexts from the
// client's own view of the premaster secret, the exact computation
// internal/kex.DeriveKeys performs on the driver side (see
// handshake/ckx.go's finishKeyExchange). A well-behaved client arrives at
// the identical values independently; this lets a test assert that.
func DeriveKeys(version wire.Version, suiteID uint16, pms, clientRandom, serverRandom []byte) (masterSecret []byte, serverWrite, clientRead *kex.CryptoContext, err error) {
	suite := suites.ByID(suiteID)
	if suite == nil {
		return nil, nil, nil, fmt.Errorf("wiretest: unknown cipher suite 0x%04x", suiteID)
	}
	masterSecret, serverWrite, clientRead = kex.DeriveKeys(uint16(version), suite, pms, clientRandom, serverRandom)
	return masterSecret, serverWrite, clientRead, nil
}

// BuildFinished wraps verifyData in a Finished handshake-message envelope.
func BuildFinished(verifyData []byte) ([]byte, error) {
	return (&wire.Finished{VerifyData: verifyData}).Marshal()
}

// ChangeCipherSpecRecord is the one-byte body of a ChangeCipherSpec record.
var ChangeCipherSpecRecord = []byte{wire.ChangeCipherSpecValue}

// Result is everything a full Run produced, for a test to assert on.
type Result struct {
	Version      wire.Version
	Suite        *suites.CipherSuite
	MasterSecret []byte
	ServerWrite  *kex.CryptoContext
	ClientRead   *kex.CryptoContext

	ClientVerifyData []byte
	ServerVerifyData []byte

	ServerFinished []byte

	// DriverServerWrite/DriverClientRead are the CryptoContexts the driver
	// itself emitted via ChangeEnc/ChangeDec at the ChangeCipherSpec
	// barrier, for comparison against ServerWrite/ClientRead above (which
	// this harness derived independently, the way a real peer would).
	DriverServerWrite *kex.CryptoContext
	DriverClientRead  *kex.CryptoContext
}

// Run starts a fresh Conn under cfg and drives it through one complete
// initial handshake as a well-behaved client offering hello. It fails fast
// (returning the driver's error unmodified) on any rejection, so
// negative-path scenarios should build their own sequence from the
// lower-level functions above instead of calling Run.
func Run(rand io.Reader, cfg *handshake.Config, hello Hello) (*Result, error) {
	return RunOn(rand, handshake.NewConn(cfg, "wiretest-client"), hello)
}

// RunOn drives an existing Conn through one complete handshake as a
// well-behaved client offering hello -- an initial handshake if conn is
// fresh, or a renegotiation if conn is already Established and its Config
// allows one. This is the building block Run is made of; tests that need
// to renegotiate call it a second time against the same Conn.
func RunOn(rand io.Reader, conn *handshake.Conn, hello Hello) (*Result, error) {
	clientRandom, chBytes, err := BuildClientHello(rand, hello)
	if err != nil {
		return nil, err
	}

	signals, err := handshake.HandleHandshake(conn, chBytes)
	if err != nil {
		return nil, err
	}
	flightBytes := firstRecordHandshake(signals)
	flight, err := ParseFlight(flightBytes)
	if err != nil {
		return nil, err
	}

	suite := suites.ByID(flight.ServerHello.CipherSuite)
	if suite == nil {
		return nil, fmt.Errorf("wiretest: server negotiated unknown suite 0x%04x", flight.ServerHello.CipherSuite)
	}

	tr := NewTranscript(flight.ServerHello.Version, suite, append([][]byte{chBytes}, flight.Raw...))

	var pms, ckxData []byte
	switch suite.KeyExchange {
	case suites.KeyExchangeRSA:
		pub, err := LeafPublicKey(flight.Certificate)
		if err != nil {
			return nil, err
		}
		pms, ckxData, err = RSAPreMasterSecret(rand, pub, hello.Version)
		if err != nil {
			return nil, err
		}
	case suites.KeyExchangeDHERSA:
		if flight.ServerKeyExchange == nil {
			return nil, fmt.Errorf("wiretest: DHE_RSA suite negotiated but no ServerKeyExchange received")
		}
		pms, ckxData, err = DHEPreMasterSecret(rand, &flight.ServerKeyExchange.Params)
		if err != nil {
			return nil, err
		}
	}

	ckxBytes, err := BuildClientKeyExchange(ckxData)
	if err != nil {
		return nil, err
	}
	if _, err := handshake.HandleHandshake(conn, ckxBytes); err != nil {
		return nil, err
	}
	tr.Append(ckxBytes)

	masterSecret, serverWrite, clientRead, err := DeriveKeys(flight.ServerHello.Version, suite.ID, pms, clientRandom[:], flight.ServerHello.Random[:])
	if err != nil {
		return nil, err
	}

	ccsSignals, err := handshake.HandleChangeCipherSpec(conn, ChangeCipherSpecRecord)
	if err != nil {
		return nil, err
	}
	var driverServerWrite, driverClientRead *kex.CryptoContext
	for _, s := range ccsSignals {
		switch sig := s.(type) {
		case handshake.ChangeEnc:
			driverServerWrite = sig.Ctx
		case handshake.ChangeDec:
			driverClientRead = sig.Ctx
		}
	}

	clientVerifyData := tr.ClientVerifyData(masterSecret)
	clientFinishedBytes, err := BuildFinished(clientVerifyData)
	if err != nil {
		return nil, err
	}
	tr.Append(clientFinishedBytes)
	serverVerifyData := tr.ServerVerifyData(masterSecret)

	signals, err = handshake.HandleHandshake(conn, clientFinishedBytes)
	if err != nil {
		return nil, err
	}
	serverFinished := firstRecordHandshake(signals)

	return &Result{
		Version:          flight.ServerHello.Version,
		Suite:            suite,
		MasterSecret:     masterSecret,
		ServerWrite:      serverWrite,
		ClientRead:       clientRead,
		ClientVerifyData: clientVerifyData,
		ServerVerifyData: serverVerifyData,
		ServerFinished:   serverFinished,

		DriverServerWrite: driverServerWrite,
		DriverClientRead:  driverClientRead,
	}, nil
}

func firstRecordHandshake(signals []handshake.Signal) []byte {
	for _, s := range signals {
		if rh, ok := s.(handshake.RecordHandshake); ok {
			return rh.Bytes
		}
	}
	return nil
}
