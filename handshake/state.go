package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/kex"
	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/transcript"
	"github.com/mattgray/go-tls-handshake/session"
)

// State is the handshake's one-of (RFC 5246 state per connection): a
// sealed sum type so a Conn's Machina field can only ever hold one of the
// variants below, each carrying exactly the data its transition needs.
// The marker method is unexported so no type outside this package can
// implement State, closing the set.
type State interface {
	isHandshakeState()
}

type stateAwaitClientHello struct{}

type stateAwaitClientKeyExchangeRSA struct {
	epoch  *session.Epoch
	params *session.Params
	log    *transcript.Log
	fh     *primitives.FinishedHash
}

type stateAwaitClientKeyExchangeDHERSA struct {
	epoch  *session.Epoch
	params *session.Params
	share  *kex.DHEServerShare
	log    *transcript.Log
	fh     *primitives.FinishedHash
}

type stateAwaitClientChangeCipherSpec struct {
	epoch       *session.Epoch
	serverWrite *kex.CryptoContext
	clientRead  *kex.CryptoContext
	log         *transcript.Log
	fh          *primitives.FinishedHash
}

type stateAwaitClientFinished struct {
	epoch *session.Epoch
	log   *transcript.Log
	fh    *primitives.FinishedHash
}

type stateEstablished struct{}

func (stateAwaitClientHello) isHandshakeState()            {}
func (stateAwaitClientKeyExchangeRSA) isHandshakeState()    {}
func (stateAwaitClientKeyExchangeDHERSA) isHandshakeState() {}
func (stateAwaitClientChangeCipherSpec) isHandshakeState()  {}
func (stateAwaitClientFinished) isHandshakeState()          {}
func (stateEstablished) isHandshakeState()                  {}
