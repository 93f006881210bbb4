// Package handshake implements the server-side TLS 1.0/1.1/1.2 handshake
// state machine: version and cipher negotiation, certificate presentation,
// RSA or DHE_RSA key agreement, master-secret derivation, the
// ChangeCipherSpec barrier, bidirectional Finished verification, and
// secure renegotiation (RFC 5746) re-entry. It is driven one decoded
// handshake message at a time by an external record layer; it performs no
// I/O of its own.
package handshake

import (
	"time"

	"github.com/mattgray/go-tls-handshake/internal/transcript"
	"github.com/mattgray/go-tls-handshake/internal/wire"
	"github.com/mattgray/go-tls-handshake/session"
)

// EpochSlot is the connection-level tag distinguishing "no handshake has
// completed yet" from "a handshake completed and this is its epoch",
// mirroring the distilled spec's InitialEpoch(version) | Epoch(e) variant.
type EpochSlot struct {
	InitialVersion wire.Version
	Current        *session.Epoch
}

// Conn is one connection's handshake-driver state: its policy, its
// current automaton state, its most recently established epoch (if any),
// and any handshake-record bytes the record layer has not yet been able
// to hand over as a complete message.
//
// A Conn is not safe for concurrent use by multiple goroutines, the same
// contract crypto/tls.Conn's handshake path has: the record layer must
// serialize HandleHandshake/HandleChangeCipherSpec calls for one
// connection.
type Conn struct {
	Config     *Config
	Machina    State
	Epoch      EpochSlot
	HSFragment []byte

	// log is the one transcript buffer this Conn owns. A ClientHello --
	// initial or renegotiation -- starts a fresh transcript by calling
	// log.Reset() rather than allocating a new Log, since RFC 5746 §3.1's
	// fresh-transcript-per-handshake requirement is about the accumulated
	// hash state, not about the Go value identity of the buffer holding it.
	log *transcript.Log

	remoteAddr string
	startedAt  time.Time
}

// NewConn starts a fresh connection in AwaitClientHello, under cfg.
// remoteAddr is passed through to Config.Hooks for lifecycle logging only;
// it carries no protocol semantics.
func NewConn(cfg *Config, remoteAddr string) *Conn {
	return &Conn{
		Config:     cfg,
		Machina:    stateAwaitClientHello{},
		log:        &transcript.Log{},
		remoteAddr: remoteAddr,
	}
}

// Close zeroes any secret material the Conn is still holding: the current
// epoch's master secret, and any premaster-secret-derived key material
// buffered in an in-progress key-exchange state. Go has no destructors, so
// this must be called explicitly by the record layer when a connection is
// torn down.
func (c *Conn) Close() {
	if c.Epoch.Current != nil {
		c.Epoch.Current.Wipe()
	}
	switch st := c.Machina.(type) {
	case stateAwaitClientChangeCipherSpec:
		wipe(st.serverWrite.Key)
		wipe(st.serverWrite.MACKey)
		wipe(st.clientRead.Key)
		wipe(st.clientRead.MACKey)
	}
	c.Machina = stateEstablished{}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
