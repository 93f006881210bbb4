package trace_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/trace"
)

func TestSlogHook_EmitsExpectedLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hook := trace.NewSlogHook(logger)

	hook.OnHandshakeStart("10.0.0.1:443")
	require.Contains(t, buf.String(), "handshake started")
	require.Contains(t, buf.String(), "10.0.0.1:443")
	buf.Reset()

	hook.OnHandshakeSuccess("10.0.0.1:443", 5*time.Millisecond)
	require.Contains(t, buf.String(), "handshake succeeded")
	buf.Reset()

	hook.OnHandshakeFailure("10.0.0.1:443", "protocol_version")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "protocol_version")
	buf.Reset()

	hook.OnCryptoError("10.0.0.1:443", errors.New("bad share"))
	require.Contains(t, buf.String(), "ERROR")
	require.Contains(t, buf.String(), "bad share")
}

func TestSlogHook_NilLoggerFallsBackToDefault(t *testing.T) {
	require.NotPanics(t, func() {
		hook := trace.NewSlogHook(nil)
		hook.OnInfo("hello")
	})
}

func TestNoOp_ImplementsHook(t *testing.T) {
	var _ trace.Hook = trace.NoOp{}
	var _ trace.Hook = trace.SlogHook{}
}
