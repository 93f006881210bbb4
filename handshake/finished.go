package handshake

import (
	"crypto/subtle"
	"time"

	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// handleClientFinished implements §4.6: verify the client's verify_data in
// constant time, then compute and emit the server's own, binding both
// into the new epoch's reneg pair before transitioning to Established.
func handleClientFinished(c *Conn, st stateAwaitClientFinished, raw []byte) ([]Signal, error) {
	if len(c.HSFragment) != 0 {
		return nil, fsmerrors.UnexpectedMessage("unconsumed handshake bytes at Finished boundary")
	}

	finishedMsg, err := wire.DecodeFinished(raw)
	if err != nil {
		return nil, fsmerrors.UnexpectedMessage("malformed Finished: ", err.Error())
	}

	expected := st.fh.ClientVerifyData(st.epoch.MasterSecret)
	if subtle.ConstantTimeCompare(expected, finishedMsg.VerifyData) != 1 {
		return nil, fsmerrors.HandshakeFailure("client Finished verify_data mismatch")
	}

	// The server verify_data is computed over the transcript extended by
	// the client's own Finished message (§4.6 step 3); log.Append feeds
	// st.fh through its sink.
	st.log.Append(raw)

	serverVerifyData := st.fh.ServerVerifyData(st.epoch.MasterSecret)
	serverFinished := &wire.Finished{VerifyData: serverVerifyData}
	serverFinishedBytes, err := serverFinished.Marshal()
	if err != nil {
		return nil, fsmerrors.HandshakeFailure("encoding Finished: ", err.Error())
	}

	st.epoch.ClientVerifyData = append([]byte(nil), finishedMsg.VerifyData...)
	st.epoch.ServerVerifyData = append([]byte(nil), serverVerifyData...)

	c.Epoch.Current = st.epoch
	c.Machina = stateEstablished{}

	c.Config.hooks().OnHandshakeSuccess(c.remoteAddr, time.Since(c.startedAt))

	return []Signal{RecordHandshake{Bytes: serverFinishedBytes}}, nil
}
