package wire_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/wire"
)

func TestClientHello_RoundTrip(t *testing.T) {
	ch := &wire.ClientHello{
		Version:                wire.VersionTLS12,
		Random:                 [32]byte{1, 2, 3},
		SessionID:              nil,
		CipherSuites:           []uint16{0x003c, 0x0033},
		CompressionMethods:     []byte{0},
		HasServerName:          true,
		ServerName:             "example.test",
		HasSignatureAlgorithms: true,
		SignatureAlgorithms:    []wire.SigAndHash{{Hash: wire.HashSHA256, Sig: wire.SignatureRSA}},
		HasRenegotiationInfo:   true,
		RenegotiationInfo:      []byte{0xaa, 0xbb},
	}
	raw, err := ch.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeClientHello(raw)
	require.NoError(t, err)
	require.Equal(t, ch.Version, got.Version)
	require.Equal(t, ch.Random, got.Random)
	require.Equal(t, ch.CipherSuites, got.CipherSuites)
	require.True(t, got.HasServerName)
	require.Equal(t, "example.test", got.ServerName)
	require.True(t, got.HasSignatureAlgorithms)
	require.Equal(t, ch.SignatureAlgorithms, got.SignatureAlgorithms)
	require.True(t, got.HasRenegotiationInfo)
	require.Equal(t, ch.RenegotiationInfo, got.RenegotiationInfo)
}

func TestClientHello_NoExtensionsRoundTrip(t *testing.T) {
	ch := &wire.ClientHello{
		Version:      wire.VersionTLS10,
		CipherSuites: []uint16{0x002f},
	}
	raw, err := ch.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeClientHello(raw)
	require.NoError(t, err)
	require.False(t, got.HasServerName)
	require.False(t, got.HasSignatureAlgorithms)
	require.False(t, got.HasRenegotiationInfo)
}

func TestDecodeClientHello_RejectsWrongType(t *testing.T) {
	raw, err := (&wire.ServerHelloDone{}).Marshal()
	require.NoError(t, err)
	_, err = wire.DecodeClientHello(raw)
	require.Error(t, err)
}

func TestDecodeClientHello_RejectsTruncated(t *testing.T) {
	_, err := wire.DecodeClientHello([]byte{1, 0, 0})
	require.Error(t, err)
}

func TestDecodeClientHello_RejectsEmptyCipherSuites(t *testing.T) {
	ch := &wire.ClientHello{Version: wire.VersionTLS12}
	raw, err := ch.Marshal()
	require.NoError(t, err)
	_, err = wire.DecodeClientHello(raw)
	require.Error(t, err, "an empty cipher_suites list is malformed per RFC 5246 §7.4.1.2")
}

func TestServerHello_RoundTrip(t *testing.T) {
	sh := &wire.ServerHello{
		Version:           wire.VersionTLS12,
		Random:            [32]byte{9, 8, 7},
		CipherSuite:       0x003c,
		RenegotiationInfo: []byte{1, 2, 3, 4},
		SendEmptyHostName: true,
	}
	raw, err := sh.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeServerHello(raw)
	require.NoError(t, err)
	require.Equal(t, sh.Version, got.Version)
	require.Equal(t, sh.Random, got.Random)
	require.Equal(t, sh.CipherSuite, got.CipherSuite)
	require.Equal(t, sh.RenegotiationInfo, got.RenegotiationInfo)
	require.True(t, got.SendEmptyHostName)
}

func TestServerHello_EmptyRenegotiationInfoRoundTrips(t *testing.T) {
	sh := &wire.ServerHello{Version: wire.VersionTLS10, CipherSuite: 0x002f}
	raw, err := sh.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeServerHello(raw)
	require.NoError(t, err)
	require.Empty(t, got.RenegotiationInfo)
	require.False(t, got.SendEmptyHostName)
}

func TestCertificate_RoundTrip(t *testing.T) {
	cert := &wire.Certificate{Chain: [][]byte{{1, 2, 3}, {4, 5}}}
	raw, err := cert.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeCertificate(raw)
	require.NoError(t, err)
	require.Equal(t, cert.Chain, got.Chain)
}

func TestServerHelloDone_RoundTrip(t *testing.T) {
	raw, err := (&wire.ServerHelloDone{}).Marshal()
	require.NoError(t, err)
	require.NoError(t, wire.DecodeServerHelloDone(raw))
}

func TestDecodeServerHelloDone_RejectsNonEmptyBody(t *testing.T) {
	ch := &wire.ClientKeyExchange{Data: []byte{1}}
	raw, err := ch.Marshal()
	require.NoError(t, err)
	// Rewrite the type byte to ServerHelloDone's, keeping a non-empty body.
	raw[0] = byte(wire.TypeServerHelloDone)
	require.Error(t, wire.DecodeServerHelloDone(raw))
}

func TestClientKeyExchange_RoundTrip(t *testing.T) {
	ckx := &wire.ClientKeyExchange{Data: []byte{1, 2, 3, 4, 5}}
	raw, err := ckx.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeClientKeyExchange(raw)
	require.NoError(t, err)
	require.Equal(t, ckx.Data, got.Data)
}

func TestFinished_RoundTrip(t *testing.T) {
	f := &wire.Finished{VerifyData: make([]byte, wire.FinishedLength)}
	for i := range f.VerifyData {
		f.VerifyData[i] = byte(i)
	}
	raw, err := f.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeFinished(raw)
	require.NoError(t, err)
	require.Equal(t, f.VerifyData, got.VerifyData)
}

func TestFinished_MarshalRejectsWrongLength(t *testing.T) {
	_, err := (&wire.Finished{VerifyData: []byte{1, 2, 3}}).Marshal()
	require.Error(t, err)
}

func TestDecodeFinished_RejectsWrongLength(t *testing.T) {
	raw := []byte{byte(wire.TypeFinished), 0, 0, 3, 1, 2, 3}
	_, err := wire.DecodeFinished(raw)
	require.Error(t, err)
}

func TestServerKeyExchangeDHE_RoundTrip_TLS12(t *testing.T) {
	skx := &wire.ServerKeyExchangeDHE{
		Params:    wire.ServerDHParams{P: big.NewInt(23), G: big.NewInt(5), Ys: big.NewInt(4)},
		HasSigAlg: true,
		SigAlg:    wire.SigAndHash{Hash: wire.HashSHA256, Sig: wire.SignatureRSA},
		Signature: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	raw, err := skx.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeServerKeyExchangeDHE(raw, wire.VersionTLS12)
	require.NoError(t, err)
	require.Equal(t, skx.Params.P, got.Params.P)
	require.Equal(t, skx.Params.G, got.Params.G)
	require.Equal(t, skx.Params.Ys, got.Params.Ys)
	require.True(t, got.HasSigAlg)
	require.Equal(t, skx.SigAlg, got.SigAlg)
	require.Equal(t, skx.Signature, got.Signature)
}

func TestServerKeyExchangeDHE_RoundTrip_TLS10NoSigAlg(t *testing.T) {
	skx := &wire.ServerKeyExchangeDHE{
		Params:    wire.ServerDHParams{P: big.NewInt(23), G: big.NewInt(5), Ys: big.NewInt(4)},
		HasSigAlg: false,
		Signature: []byte{1, 2, 3},
	}
	raw, err := skx.Marshal()
	require.NoError(t, err)

	got, err := wire.DecodeServerKeyExchangeDHE(raw, wire.VersionTLS10)
	require.NoError(t, err)
	require.False(t, got.HasSigAlg)
	require.Equal(t, skx.Signature, got.Signature)
}

func TestSplitHandshakeMessages(t *testing.T) {
	a, err := (&wire.ServerHelloDone{}).Marshal()
	require.NoError(t, err)
	b, err := (&wire.Finished{VerifyData: make([]byte, wire.FinishedLength)}).Marshal()
	require.NoError(t, err)

	msgs, err := wire.SplitHandshakeMessages(append(append([]byte(nil), a...), b...))
	require.NoError(t, err)
	require.Equal(t, [][]byte{a, b}, msgs)
}

func TestSplitHandshakeMessages_RejectsTrailingGarbage(t *testing.T) {
	_, err := wire.SplitHandshakeMessages([]byte{1, 0, 0})
	require.Error(t, err)
}

func TestPeekHandshakeType(t *testing.T) {
	raw, err := (&wire.ServerHelloDone{}).Marshal()
	require.NoError(t, err)
	typ, err := wire.PeekHandshakeType(raw)
	require.NoError(t, err)
	require.Equal(t, wire.TypeServerHelloDone, typ)
}
