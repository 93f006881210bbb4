package handshake

import "github.com/mattgray/go-tls-handshake/internal/fsmerrors"

// handleRenegotiationHello implements §4.7: a ClientHello arriving in
// stateEstablished is a renegotiation request rather than an initial
// handshake. It is refused outright unless the driver is configured to
// allow renegotiation at all; the secure_renegotiation binding itself is
// checked by handleClientHello, which this re-enters with the established
// epoch so the ClientHello/first-flight logic never forks into two copies.
func handleRenegotiationHello(c *Conn, raw []byte) ([]Signal, error) {
	if !c.Config.UseRenegotiation {
		return nil, fsmerrors.HandshakeFailure("renegotiation attempted but not enabled")
	}
	return handleClientHello(c, raw, true, c.Epoch.Current)
}
