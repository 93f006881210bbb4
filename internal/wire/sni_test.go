package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/wire"
)

func TestValidateHostname_Accepts(t *testing.T) {
	got, err := wire.ValidateHostname("example.test")
	require.NoError(t, err)
	require.Equal(t, "example.test", got)
}

func TestValidateHostname_TrimsTrailingDot(t *testing.T) {
	got, err := wire.ValidateHostname("example.test.")
	require.NoError(t, err)
	require.Equal(t, "example.test", got)
}

func TestValidateHostname_NormalizesUnicodeToASCII(t *testing.T) {
	got, err := wire.ValidateHostname("münchen.example")
	require.NoError(t, err)
	require.Contains(t, got, "xn--")
}

func TestValidateHostname_RejectsEmpty(t *testing.T) {
	_, err := wire.ValidateHostname("")
	require.Error(t, err)
}

func TestValidateHostname_RejectsIPLiteral(t *testing.T) {
	_, err := wire.ValidateHostname("192.0.2.1")
	require.Error(t, err)
	var hostErr *wire.HostnameError
	require.ErrorAs(t, err, &hostErr)
}

func TestValidateHostname_RejectsConsecutiveDots(t *testing.T) {
	_, err := wire.ValidateHostname("foo..example.test")
	require.Error(t, err)
}

func TestValidateHostname_RejectsTooLong(t *testing.T) {
	long := make([]byte, 0, 260)
	for len(long) < 260 {
		long = append(long, []byte("a.")...)
	}
	_, err := wire.ValidateHostname(string(long))
	require.Error(t, err)
}
