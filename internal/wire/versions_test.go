package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/wire"
)

func TestVersion_Valid(t *testing.T) {
	require.True(t, wire.VersionTLS10.Valid())
	require.True(t, wire.VersionTLS11.Valid())
	require.True(t, wire.VersionTLS12.Valid())
	require.False(t, wire.Version(0x0300).Valid())
	require.False(t, wire.Version(0x0304).Valid())
}

func TestVersion_String(t *testing.T) {
	require.Equal(t, "TLS1.0", wire.VersionTLS10.String())
	require.Equal(t, "TLS1.2", wire.VersionTLS12.String())
	require.Equal(t, "unknown", wire.Version(0x0300).String())
}
