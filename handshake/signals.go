package handshake

import "github.com/mattgray/go-tls-handshake/internal/kex"

// Signal is a closed sum type of the outbound directives a driver call
// returns: records to emit, and the cipher-context swap barriers that
// must take effect between them, in the order they appear in the slice.
type Signal interface {
	isSignal()
}

// RecordHandshake carries one record-layer payload of concatenated
// handshake-message bytes, to be sent under the current outbound cipher
// context at the point it appears in the signal list.
type RecordHandshake struct {
	Bytes []byte
}

// RecordChangeCipherSpec is the one-octet ChangeCipherSpec record this
// driver emits after accepting the client's.
type RecordChangeCipherSpec struct{}

// ChangeEnc directs the record layer to swap its outbound cipher context
// to Ctx before encrypting any record emitted after this signal in the
// same or a later call's signal list.
type ChangeEnc struct {
	Ctx *kex.CryptoContext
}

// ChangeDec directs the caller to swap its inbound cipher context to Ctx
// before decrypting the next inbound record.
type ChangeDec struct {
	Ctx *kex.CryptoContext
}

func (RecordHandshake) isSignal()       {}
func (RecordChangeCipherSpec) isSignal() {}
func (ChangeEnc) isSignal()             {}
func (ChangeDec) isSignal()             {}
