package primitives_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
)

func TestMasterSecret_DeterministicAndLengthCorrect(t *testing.T) {
	pms := make([]byte, primitives.PreMasterSecretLength)
	for i := range pms {
		pms[i] = byte(i)
	}
	cr := make([]byte, 32)
	sr := make([]byte, 32)
	for i := range cr {
		cr[i] = byte(i + 1)
		sr[i] = byte(i + 2)
	}

	ms1 := primitives.MasterSecret(0x0303, false, pms, cr, sr)
	ms2 := primitives.MasterSecret(0x0303, false, pms, cr, sr)
	require.Len(t, ms1, 48)
	require.Equal(t, ms1, ms2)
}

func TestMasterSecret_DiffersAcrossPRFHashChoice(t *testing.T) {
	pms := make([]byte, primitives.PreMasterSecretLength)
	cr := make([]byte, 32)
	sr := make([]byte, 32)

	sha256MS := primitives.MasterSecret(0x0303, false, pms, cr, sr)
	sha384MS := primitives.MasterSecret(0x0303, true, pms, cr, sr)
	require.NotEqual(t, sha256MS, sha384MS)
}

func TestMasterSecret_DiffersAcrossVersion(t *testing.T) {
	pms := make([]byte, primitives.PreMasterSecretLength)
	cr := make([]byte, 32)
	sr := make([]byte, 32)

	tls10MS := primitives.MasterSecret(0x0301, false, pms, cr, sr)
	tls12MS := primitives.MasterSecret(0x0303, false, pms, cr, sr)
	require.NotEqual(t, tls10MS, tls12MS)
}

func TestDeriveKeyBlock_SlicesAreDisjointAndCorrectlySized(t *testing.T) {
	ms := make([]byte, 48)
	cr := make([]byte, 32)
	sr := make([]byte, 32)
	lens := primitives.KeyBlockLengths{MACLen: 20, KeyLen: 16, IVLen: 16}

	kb := primitives.DeriveKeyBlock(0x0303, false, ms, cr, sr, lens)
	require.Len(t, kb.ClientMAC, 20)
	require.Len(t, kb.ServerMAC, 20)
	require.Len(t, kb.ClientKey, 16)
	require.Len(t, kb.ServerKey, 16)
	require.Len(t, kb.ClientIV, 16)
	require.Len(t, kb.ServerIV, 16)
	require.NotEqual(t, kb.ClientMAC, kb.ServerMAC)
	require.NotEqual(t, kb.ClientKey, kb.ServerKey)
}

func TestFinishedHash_ClientAndServerVerifyDataDiffer(t *testing.T) {
	fh := primitives.NewFinishedHash(0x0303, false)
	fh.Write([]byte("ClientHello"))
	fh.Write([]byte("ServerHello"))

	ms := make([]byte, 48)
	for i := range ms {
		ms[i] = byte(i)
	}
	clientVD := fh.ClientVerifyData(ms)
	serverVD := fh.ServerVerifyData(ms)

	require.Len(t, clientVD, 12)
	require.Len(t, serverVD, 12)
	require.NotEqual(t, clientVD, serverVD)
}

func TestFinishedHash_DivergesOnDifferentTranscript(t *testing.T) {
	ms := make([]byte, 48)

	a := primitives.NewFinishedHash(0x0303, false)
	a.Write([]byte("ClientHello"))

	b := primitives.NewFinishedHash(0x0303, false)
	b.Write([]byte("a different ClientHello"))

	require.NotEqual(t, a.ClientVerifyData(ms), b.ClientVerifyData(ms))
}

func TestFinishedHash_TLS10UsesMD5SHA1Combination(t *testing.T) {
	ms := make([]byte, 48)

	tls10 := primitives.NewFinishedHash(0x0301, false)
	tls10.Write([]byte("msg"))
	tls12 := primitives.NewFinishedHash(0x0303, false)
	tls12.Write([]byte("msg"))

	require.NotEqual(t, tls10.ClientVerifyData(ms), tls12.ClientVerifyData(ms))
}
