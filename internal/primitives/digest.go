package primitives

import (
	"crypto"
	"crypto/md5"
	"crypto/sha1"
)

// SignatureDigest hashes payload the way a ServerKeyExchange signature
// expects it to be hashed for the negotiated protocol version (RFC 5246
// §7.4.3, RFC 2246 §7.4.3): TLS 1.0/1.1 always sign MD5(payload)||SHA1(payload)
// under crypto.MD5SHA1; TLS 1.2 signs a single digest under the negotiated
// hash algorithm.
func SignatureDigest(version uint16, hashAlg crypto.Hash, payload []byte) (digest []byte, signHash crypto.Hash) {
	if version < VersionTLS12 {
		md5Sum := md5.Sum(payload)
		sha1Sum := sha1.Sum(payload)
		out := make([]byte, 0, len(md5Sum)+len(sha1Sum))
		out = append(out, md5Sum[:]...)
		out = append(out, sha1Sum[:]...)
		return out, crypto.MD5SHA1
	}
	h := hashAlg.New()
	h.Write(payload)
	return h.Sum(nil), hashAlg
}
