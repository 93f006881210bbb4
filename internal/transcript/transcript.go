// Package transcript holds the ordered record of handshake messages a
// connection has sent or received, in wire form, and fans each one out to
// the Finished-message hash. The ServerKeyExchange signature does not read
// from it: that signature covers the hello randoms and DH params only.
package transcript

// Log is an append-only ordered buffer of handshake-message wire bytes.
// It is not safe for concurrent use; a Conn owns exactly one Log.
type Log struct {
	messages [][]byte
	sinks    []Sink
}

// Sink receives a copy of every message appended to a Log, in order. A
// FinishedHash is the canonical Sink: it exposes a Write([]byte) (int,
// error) method so any io.Writer-shaped accumulator works here, but Sink
// is kept as a distinct, narrower name instead of reusing io.Writer so
// this package does not need to reach for the wrong kind of writer (a
// network or file writer) by accident.
type Sink interface {
	Write(p []byte) (int, error)
}

// AddSink registers a Sink that will receive every future Append. It does
// not receive messages already appended; attach a Log's sinks before
// appending anything a Finished verification needs to cover.
func (l *Log) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Append records msg (a full, already-framed handshake message, including
// its 4-byte header) as the next entry in the transcript, and fans it out
// to every registered Sink.
func (l *Log) Append(msg []byte) {
	l.messages = append(l.messages, msg)
	for _, s := range l.sinks {
		s.Write(msg)
	}
}

// Messages returns the recorded messages in append order. The returned
// slice aliases internal storage and must not be mutated by the caller.
func (l *Log) Messages() [][]byte {
	return l.messages
}

// Reset discards all recorded messages and sinks, for reuse across a
// renegotiation, which starts a fresh transcript (RFC 5746 §3.1) while the
// record layer itself keeps running under the prior epoch's keys until the
// new ChangeCipherSpec lands.
func (l *Log) Reset() {
	l.messages = nil
	l.sinks = nil
}
