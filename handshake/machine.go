package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// HandleHandshake drives one decoded handshake message through the
// automaton: (current_state, incoming_bytes) -> (next_state,
// outgoing_signals) | Error, per §4.1's state/message cross-product.
// Unparseable bytes are fatal unexpected_message; any (state, message
// kind) pair not in that table is fatal handshake_failure, matching the
// "exhaustive, unambiguous, refuse any out-of-order message" requirement.
func HandleHandshake(c *Conn, raw []byte) ([]Signal, error) {
	signals, err := dispatchHandshake(c, raw)
	if err != nil {
		c.Config.hooks().OnHandshakeFailure(c.remoteAddr, err.Error())
	}
	return signals, err
}

func dispatchHandshake(c *Conn, raw []byte) ([]Signal, error) {
	typ, err := wire.PeekHandshakeType(raw)
	if err != nil {
		return nil, fsmerrors.UnexpectedMessage("unparseable handshake message: ", err.Error())
	}

	switch st := c.Machina.(type) {
	case stateAwaitClientHello:
		if typ != wire.TypeClientHello {
			return nil, fsmerrors.HandshakeFailure("expected ClientHello, got ", typ.String())
		}
		return handleClientHello(c, raw, false, nil)

	case stateEstablished:
		if typ != wire.TypeClientHello {
			return nil, fsmerrors.HandshakeFailure("unexpected ", typ.String(), " while established")
		}
		return handleRenegotiationHello(c, raw)

	case stateAwaitClientKeyExchangeRSA:
		if typ != wire.TypeClientKeyExchange {
			return nil, fsmerrors.HandshakeFailure("expected ClientKeyExchange, got ", typ.String())
		}
		return handleClientKeyExchangeRSA(c, st, raw)

	case stateAwaitClientKeyExchangeDHERSA:
		if typ != wire.TypeClientKeyExchange {
			return nil, fsmerrors.HandshakeFailure("expected ClientKeyExchange, got ", typ.String())
		}
		return handleClientKeyExchangeDHERSA(c, st, raw)

	case stateAwaitClientFinished:
		if typ != wire.TypeFinished {
			return nil, fsmerrors.HandshakeFailure("expected Finished, got ", typ.String())
		}
		return handleClientFinished(c, st, raw)

	case stateAwaitClientChangeCipherSpec:
		return nil, fsmerrors.HandshakeFailure("expected ChangeCipherSpec, got handshake message ", typ.String())

	default:
		panic("handshake: unreachable state in HandleHandshake")
	}
}
