package wire

// HashAlgorithm is the hash half of a TLS 1.2 SignatureAndHashAlgorithm pair
// (RFC 5246 §7.4.1.4.1).
type HashAlgorithm uint8

const (
	HashMD5    HashAlgorithm = 1
	HashSHA1   HashAlgorithm = 2
	HashSHA224 HashAlgorithm = 3
	HashSHA256 HashAlgorithm = 4
	HashSHA384 HashAlgorithm = 5
	HashSHA512 HashAlgorithm = 6
)

// SignatureAlgorithm is the signature half of the pair. Only SignatureRSA is
// ever selected by this server, but DSA/ECDSA are legal wire values the
// client may advertise and which we must be able to skip over.
type SignatureAlgorithm uint8

const (
	SignatureRSA   SignatureAlgorithm = 1
	SignatureDSA   SignatureAlgorithm = 2
	SignatureECDSA SignatureAlgorithm = 3
)

// SigAndHash is a single (hash, signature) pair as carried in a
// ClientHello's signature_algorithms extension.
type SigAndHash struct {
	Hash HashAlgorithm
	Sig  SignatureAlgorithm
}
