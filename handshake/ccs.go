package handshake

import (
	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// HandleChangeCipherSpec drives the ChangeCipherSpec barrier (§4.5). It is
// accepted only in stateAwaitClientChangeCipherSpec; any other state is
// fatal unexpected_message. On success it returns the three signals the
// record layer must apply in order: emit the ChangeCipherSpec record, then
// swap in the new write context, then the new read context.
func HandleChangeCipherSpec(c *Conn, ccs []byte) ([]Signal, error) {
	signals, err := dispatchChangeCipherSpec(c, ccs)
	if err != nil {
		c.Config.hooks().OnHandshakeFailure(c.remoteAddr, err.Error())
	}
	return signals, err
}

func dispatchChangeCipherSpec(c *Conn, ccs []byte) ([]Signal, error) {
	st, ok := c.Machina.(stateAwaitClientChangeCipherSpec)
	if !ok {
		return nil, fsmerrors.UnexpectedMessage("unexpected ChangeCipherSpec")
	}
	if len(ccs) != 1 || ccs[0] != wire.ChangeCipherSpecValue {
		return nil, fsmerrors.UnexpectedMessage("malformed ChangeCipherSpec")
	}
	if len(c.HSFragment) != 0 {
		return nil, fsmerrors.UnexpectedMessage("unconsumed handshake bytes at ChangeCipherSpec boundary")
	}

	c.Machina = stateAwaitClientFinished{epoch: st.epoch, log: st.log, fh: st.fh}

	return []Signal{
		RecordChangeCipherSpec{},
		ChangeEnc{Ctx: st.serverWrite},
		ChangeDec{Ctx: st.clientRead},
	}, nil
}
