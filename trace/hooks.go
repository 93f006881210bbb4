// Package trace defines the observability hook surface the handshake driver
// reports through. Hooks are side-channel-free: every method call happens
// after the protocol-relevant decision has already been made, so a hook can
// be swapped, skipped, or made to panic without changing handshake outcomes.
//
// Unlike the global, atomically-swapped hook registry this package is
// modeled on, a Hook here is passed explicitly into each Conn rather than
// stored in package-level state: the handshake driver has no hidden shared
// mutable state between connections, and a hook handle is just one more
// piece of that per-connection state.
package trace

import "time"

// Hook receives handshake lifecycle and logging events. All methods must be
// fast and non-blocking: they are called from the handshake's hot path.
type Hook interface {
	OnHandshakeStart(remoteAddr string)
	OnHandshakeSuccess(remoteAddr string, duration time.Duration)
	OnHandshakeFailure(remoteAddr string, reason string)
	OnCryptoError(remoteAddr string, err error)

	OnDebug(message string)
	OnInfo(message string)
	OnWarn(message string)
	OnError(message string)
}

// NoOp is a zero-overhead Hook that discards every event.
type NoOp struct{}

func (NoOp) OnHandshakeStart(string)                    {}
func (NoOp) OnHandshakeSuccess(string, time.Duration)   {}
func (NoOp) OnHandshakeFailure(string, string)          {}
func (NoOp) OnCryptoError(string, error)                {}
func (NoOp) OnDebug(string)                             {}
func (NoOp) OnInfo(string)                              {}
func (NoOp) OnWarn(string)                              {}
func (NoOp) OnError(string)                             {}

// Default returns the shared no-op hook. Config.Hooks resolves to this when
// left nil, so callers of the handshake package never need to nil-check.
func Default() Hook { return NoOp{} }
