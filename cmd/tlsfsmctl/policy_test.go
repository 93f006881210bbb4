package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/wire"
)

func writePolicy(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadPolicy_ParsesFields(t *testing.T) {
	path := writePolicy(t, `
protocol_versions: [tls1.2, tls1.1]
ciphers: [TLS_RSA_WITH_AES_128_CBC_SHA256]
hashes: [sha256]
secure_renegotiation: true
`)
	p, err := loadPolicy(path)
	require.NoError(t, err)
	require.Equal(t, []string{"tls1.2", "tls1.1"}, p.ProtocolVersions)
	require.True(t, p.SecureRenegotiation)
	require.False(t, p.UseRenegotiation)
}

func TestLoadPolicy_MissingFileErrors(t *testing.T) {
	_, err := loadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestToConfig_BuildsWorkingConfig(t *testing.T) {
	p := &policy{
		ProtocolVersions: []string{"tls1.2"},
		Ciphers:          []string{"TLS_RSA_WITH_AES_128_CBC_SHA256"},
		Hashes:           []string{"sha256"},
	}
	cfg, err := p.toConfig()
	require.NoError(t, err)
	require.Equal(t, []wire.Version{wire.VersionTLS12}, cfg.ProtocolVersions)
	require.Len(t, cfg.Ciphers, 1)
	require.NotNil(t, cfg.Certificate, "no cert_file/key_file given, should fall back to a throwaway identity")
	require.NoError(t, cfg.Validate())
}

func TestToConfig_DefaultsCiphersToAllWhenUnset(t *testing.T) {
	p := &policy{ProtocolVersions: []string{"tls1.2"}}
	cfg, err := p.toConfig()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Ciphers)
}

func TestToConfig_UnknownVersionErrors(t *testing.T) {
	p := &policy{ProtocolVersions: []string{"tls9.9"}}
	_, err := p.toConfig()
	require.Error(t, err)
}

func TestToConfig_UnknownCipherErrors(t *testing.T) {
	p := &policy{ProtocolVersions: []string{"tls1.2"}, Ciphers: []string{"NOT_A_REAL_SUITE"}}
	_, err := p.toConfig()
	require.Error(t, err)
}
