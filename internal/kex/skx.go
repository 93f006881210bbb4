package kex

import (
	"crypto"
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/mattgray/go-tls-handshake/internal/primitives"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// hashAlgToCryptoHash maps a wire.HashAlgorithm to its crypto.Hash, the
// way mooncaker816-LearningGoStandardLib__prf.go's lookupTLSHash does for
// TLS 1.2 signature schemes.
func hashAlgToCryptoHash(h wire.HashAlgorithm) (crypto.Hash, bool) {
	switch h {
	case wire.HashSHA1:
		return crypto.SHA1, true
	case wire.HashSHA224:
		return crypto.SHA224, true
	case wire.HashSHA256:
		return crypto.SHA256, true
	case wire.HashSHA384:
		return crypto.SHA384, true
	case wire.HashSHA512:
		return crypto.SHA512, true
	default:
		return 0, false
	}
}

// SelectSignatureHash picks the hash a TLS 1.2 ServerKeyExchange signature
// will use: the first entry in the client's signature_algorithms extension
// (limited to RSA-signed pairs) that also appears in serverPreference, in
// serverPreference's order; or SHA-1 if the client sent no extension at
// all (RFC 5246 §7.4.1.4.1's legacy default).
func SelectSignatureHash(clientAlgs []wire.SigAndHash, serverPreference []crypto.Hash) (wire.HashAlgorithm, crypto.Hash, error) {
	if len(clientAlgs) == 0 {
		return wire.HashSHA1, crypto.SHA1, nil
	}

	offered := make(map[crypto.Hash]wire.HashAlgorithm)
	for _, sh := range clientAlgs {
		if sh.Sig != wire.SignatureRSA {
			continue
		}
		if ch, ok := hashAlgToCryptoHash(sh.Hash); ok {
			offered[ch] = sh.Hash
		}
	}
	for _, pref := range serverPreference {
		if wh, ok := offered[pref]; ok {
			return wh, pref, nil
		}
	}
	return 0, 0, fmt.Errorf("tls: no RSA signature_algorithms entry in common with server preference")
}

// SignServerKeyExchange builds the signed payload for a DHE_RSA
// ServerKeyExchange and signs it per the negotiated version's rules
// (RFC 5246 §7.4.3 / RFC 2246 §7.4.3): MD5||SHA1 under crypto.MD5SHA1 for
// TLS 1.0/1.1, or a single negotiated hash, identifier included, for
// TLS 1.2.
func SignServerKeyExchange(rand io.Reader, priv *rsa.PrivateKey, version uint16, clientRandom, serverRandom [32]byte, params *wire.ServerDHParams, sigHashAlg wire.HashAlgorithm, sigHash crypto.Hash) (*wire.ServerKeyExchangeDHE, error) {
	payload := wire.SignedPayload(clientRandom, serverRandom, params)
	digest, signHash := primitives.SignatureDigest(version, sigHash, payload)

	sig, err := rsa.SignPKCS1v15(rand, priv, signHash, digest)
	if err != nil {
		return nil, err
	}

	return &wire.ServerKeyExchangeDHE{
		Params:    *params,
		HasSigAlg: wire.Version(version) >= wire.VersionTLS12,
		SigAlg:    wire.SigAndHash{Hash: sigHashAlg, Sig: wire.SignatureRSA},
		Signature: sig,
	}, nil
}
