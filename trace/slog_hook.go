package trace

import (
	"log/slog"
	"time"
)

// SlogHook bridges handshake lifecycle events onto a structured
// log/slog.Logger, the way dpeckett-tlshd-go's cmd/main.go wires its own
// slog.Logger into its handshake handler.
type SlogHook struct {
	Logger *slog.Logger
}

// NewSlogHook returns a SlogHook logging through logger. A nil logger falls
// back to slog.Default().
func NewSlogHook(logger *slog.Logger) SlogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogHook{Logger: logger}
}

func (h SlogHook) OnHandshakeStart(remoteAddr string) {
	h.Logger.Info("handshake started", "remote_addr", remoteAddr)
}

func (h SlogHook) OnHandshakeSuccess(remoteAddr string, duration time.Duration) {
	h.Logger.Info("handshake succeeded", "remote_addr", remoteAddr, "duration", duration)
}

func (h SlogHook) OnHandshakeFailure(remoteAddr string, reason string) {
	h.Logger.Warn("handshake failed", "remote_addr", remoteAddr, "reason", reason)
}

func (h SlogHook) OnCryptoError(remoteAddr string, err error) {
	h.Logger.Error("crypto error", "remote_addr", remoteAddr, "error", err)
}

func (h SlogHook) OnDebug(message string) { h.Logger.Debug(message) }
func (h SlogHook) OnInfo(message string)  { h.Logger.Info(message) }
func (h SlogHook) OnWarn(message string)  { h.Logger.Warn(message) }
func (h SlogHook) OnError(message string) { h.Logger.Error(message) }
