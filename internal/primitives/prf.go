package primitives

import (
	"crypto"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// splitSecret splits a secret in two overlapping-at-the-middle halves, as
// required by the TLS 1.0/1.1 PRF (RFC 2246 §5): an odd-length secret
// shares its middle byte between both halves.
func splitSecret(secret []byte) (s1, s2 []byte) {
	s1 = secret[0 : (len(secret)+1)/2]
	s2 = secret[len(secret)/2:]
	return
}

// pHash is the P_hash data-expansion function (RFC 5246 §5): it iterates
// HMAC(secret, A_i || seed) where A_0 = seed and A_i = HMAC(secret, A_(i-1)).
func pHash(result, secret, seed []byte, newHash func() hash.Hash) {
	h := hmac.New(newHash, secret)
	h.Write(seed)
	a := h.Sum(nil)

	for j := 0; j < len(result); {
		h.Reset()
		h.Write(a)
		h.Write(seed)
		b := h.Sum(nil)
		j += copy(result[j:], b)

		h.Reset()
		h.Write(a)
		a = h.Sum(nil)
	}
}

// prf10 is the TLS 1.0/1.1 PRF (RFC 2246 §5): the secret is split in two,
// P_MD5 and P_SHA-1 are each computed over one half, and the results are
// XORed together.
func prf10(result, secret, label, seed []byte) {
	labelAndSeed := make([]byte, len(label)+len(seed))
	copy(labelAndSeed, label)
	copy(labelAndSeed[len(label):], seed)

	s1, s2 := splitSecret(secret)
	pHash(result, s1, labelAndSeed, md5.New)

	result2 := make([]byte, len(result))
	pHash(result2, s2, labelAndSeed, sha1.New)
	for i, b := range result2 {
		result[i] ^= b
	}
}

// prf12 returns the TLS 1.2 PRF (RFC 5246 §5) for a given cipher-suite
// hash: a single P_hash call, no secret split, no XOR.
func prf12(newHash func() hash.Hash) func(result, secret, label, seed []byte) {
	return func(result, secret, label, seed []byte) {
		labelAndSeed := make([]byte, len(label)+len(seed))
		copy(labelAndSeed, label)
		copy(labelAndSeed[len(label):], seed)
		pHash(result, secret, labelAndSeed, newHash)
	}
}

const (
	masterSecretLength   = 48
	finishedVerifyLength = 12
)

var (
	masterSecretLabel   = []byte("master secret")
	keyExpansionLabel   = []byte("key expansion")
	clientFinishedLabel = []byte("client finished")
	serverFinishedLabel = []byte("server finished")
)

// prfForSuite picks the PRF and, for TLS 1.2, the transcript hash that go
// with a protocol version and cipher suite: TLS 1.0/1.1 always use the
// MD5+SHA-1 combination of prf10; TLS 1.2 uses prf12 over the suite's own
// hash, defaulting to SHA-256 when the suite does not specify SHA-384.
func prfForSuite(version uint16, suiteUsesSHA384 bool) (prf func(result, secret, label, seed []byte), transcriptHash crypto.Hash) {
	switch {
	case version < VersionTLS12:
		return prf10, 0
	case suiteUsesSHA384:
		return prf12(sha512.New384), crypto.SHA384
	default:
		return prf12(sha256.New), crypto.SHA256
	}
}

// MasterSecret derives the 48-byte master_secret from the premaster secret
// and the hello randoms (RFC 5246 §8.1).
func MasterSecret(version uint16, suiteUsesSHA384 bool, preMasterSecret, clientRandom, serverRandom []byte) []byte {
	seed := make([]byte, 0, len(clientRandom)+len(serverRandom))
	seed = append(seed, clientRandom...)
	seed = append(seed, serverRandom...)

	prf, _ := prfForSuite(version, suiteUsesSHA384)
	out := make([]byte, masterSecretLength)
	prf(out, preMasterSecret, masterSecretLabel, seed)
	return out
}

// KeyBlockLengths bundles the sizes keys-from-master-secret expansion needs
// to know for a given cipher suite: MAC key length (0 for an AEAD suite),
// bulk-cipher key length, and explicit IV length (0 for an AEAD suite,
// which derives its nonce differently).
type KeyBlockLengths struct {
	MACLen int
	KeyLen int
	IVLen  int
}

// KeyBlock is the six (or, for AEAD suites, two) slices carved out of the
// expanded key_block (RFC 5246 §6.3): client/server MAC keys,
// client/server bulk-cipher keys, client/server fixed IVs.
type KeyBlock struct {
	ClientMAC, ServerMAC []byte
	ClientKey, ServerKey []byte
	ClientIV, ServerIV   []byte
}

// DeriveKeyBlock expands masterSecret into a KeyBlock sized for lens.
func DeriveKeyBlock(version uint16, suiteUsesSHA384 bool, masterSecret, clientRandom, serverRandom []byte, lens KeyBlockLengths) KeyBlock {
	seed := make([]byte, 0, len(clientRandom)+len(serverRandom))
	seed = append(seed, serverRandom...)
	seed = append(seed, clientRandom...)

	n := 2*lens.MACLen + 2*lens.KeyLen + 2*lens.IVLen
	material := make([]byte, n)
	prf, _ := prfForSuite(version, suiteUsesSHA384)
	prf(material, masterSecret, keyExpansionLabel, seed)

	var kb KeyBlock
	take := func(n int) []byte {
		b := material[:n]
		material = material[n:]
		return b
	}
	kb.ClientMAC = take(lens.MACLen)
	kb.ServerMAC = take(lens.MACLen)
	kb.ClientKey = take(lens.KeyLen)
	kb.ServerKey = take(lens.KeyLen)
	kb.ClientIV = take(lens.IVLen)
	kb.ServerIV = take(lens.IVLen)
	return kb
}

// FinishedHash accumulates the running transcript hash(es) used to compute
// a Finished message's verify_data (RFC 5246 §7.4.9): a single hash for
// TLS 1.2, or the MD5+SHA-1 pair for TLS 1.0/1.1.
type FinishedHash struct {
	client hash.Hash
	server hash.Hash

	clientMD5 hash.Hash
	serverMD5 hash.Hash

	version uint16
	prf     func(result, secret, label, seed []byte)
}

// NewFinishedHash constructs a FinishedHash for the negotiated version and
// cipher suite.
func NewFinishedHash(version uint16, suiteUsesSHA384 bool) *FinishedHash {
	prf, transcriptHash := prfForSuite(version, suiteUsesSHA384)
	if transcriptHash != 0 {
		return &FinishedHash{client: transcriptHash.New(), server: transcriptHash.New(), version: version, prf: prf}
	}
	return &FinishedHash{
		client: sha1.New(), server: sha1.New(),
		clientMD5: md5.New(), serverMD5: md5.New(),
		version: version, prf: prf,
	}
}

// Write feeds another handshake message's wire bytes into the transcript.
// It never returns an error; the signature matches io.Writer so callers
// can hang a FinishedHash off of a transcript log directly.
func (h *FinishedHash) Write(msg []byte) (int, error) {
	h.client.Write(msg)
	h.server.Write(msg)
	if h.version < VersionTLS12 {
		h.clientMD5.Write(msg)
		h.serverMD5.Write(msg)
	}
	return len(msg), nil
}

// Sum returns the seed fed into the client/server Finished PRF call: the
// transcript hash for TLS 1.2, or MD5||SHA-1 for TLS 1.0/1.1.
func (h *FinishedHash) Sum() []byte {
	if h.version >= VersionTLS12 {
		return h.client.Sum(nil)
	}
	out := make([]byte, 0, md5.Size+sha1.Size)
	out = h.clientMD5.Sum(out)
	return h.client.Sum(out)
}

// ClientVerifyData computes the verify_data for a client Finished message.
func (h *FinishedHash) ClientVerifyData(masterSecret []byte) []byte {
	out := make([]byte, finishedVerifyLength)
	h.prf(out, masterSecret, clientFinishedLabel, h.Sum())
	return out
}

// ServerVerifyData computes the verify_data for a server Finished message.
func (h *FinishedHash) ServerVerifyData(masterSecret []byte) []byte {
	out := make([]byte, finishedVerifyLength)
	h.prf(out, masterSecret, serverFinishedLabel, h.Sum())
	return out
}

// the VersionTLS12 constant below is duplicated from internal/wire so that
// this package does not import internal/wire just for this comparison.
const VersionTLS12 = 0x0303
