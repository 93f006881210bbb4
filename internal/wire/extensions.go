package wire

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// parseServerNameExtension decodes RFC 6066 §3's server_name extension,
// returning the first (and, per RFC 6066, only legal) host_name entry.
func parseServerNameExtension(extData cryptobyte.String) (string, error) {
	var nameList cryptobyte.String
	if !extData.ReadUint16LengthPrefixed(&nameList) || nameList.Empty() {
		return "", fmt.Errorf("tls: malformed server_name extension")
	}
	var hostName string
	for !nameList.Empty() {
		var nameType uint8
		var nameBytes cryptobyte.String
		if !nameList.ReadUint8(&nameType) || !nameList.ReadUint16LengthPrefixed(&nameBytes) {
			return "", fmt.Errorf("tls: malformed server_name extension")
		}
		if nameType != 0 { // host_name
			continue
		}
		if hostName != "" {
			return "", fmt.Errorf("tls: multiple host_name entries in server_name extension")
		}
		if nameBytes.Empty() {
			return "", fmt.Errorf("tls: empty host_name in server_name extension")
		}
		hostName = string(nameBytes)
	}
	return hostName, nil
}

// addServerNameExtension encodes RFC 6066 §3's server_name extension body
// for a single host_name entry, the mirror of parseServerNameExtension.
func addServerNameExtension(b *cryptobyte.Builder, hostName string) {
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint8(0) // host_name
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes([]byte(hostName))
		})
	})
}

// parseSignatureAlgorithmsExtension decodes RFC 5246 §7.4.1.4.1's
// signature_algorithms extension.
func parseSignatureAlgorithmsExtension(extData cryptobyte.String) ([]SigAndHash, error) {
	var algs cryptobyte.String
	if !extData.ReadUint16LengthPrefixed(&algs) || len(algs)%2 != 0 || len(algs) == 0 {
		return nil, fmt.Errorf("tls: malformed signature_algorithms extension")
	}
	var out []SigAndHash
	for !algs.Empty() {
		var hash, sig uint8
		if !algs.ReadUint8(&hash) || !algs.ReadUint8(&sig) {
			return nil, fmt.Errorf("tls: malformed signature_algorithms extension")
		}
		out = append(out, SigAndHash{Hash: HashAlgorithm(hash), Sig: SignatureAlgorithm(sig)})
	}
	return out, nil
}

// addSignatureAlgorithmsExtension encodes RFC 5246 §7.4.1.4.1's
// signature_algorithms extension body, the mirror of
// parseSignatureAlgorithmsExtension.
func addSignatureAlgorithmsExtension(b *cryptobyte.Builder, algs []SigAndHash) {
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, a := range algs {
			b.AddUint8(uint8(a.Hash))
			b.AddUint8(uint8(a.Sig))
		}
	})
}

// parseRenegotiationInfoExtension decodes RFC 5746 §3.2's
// renegotiation_info extension, returning the renegotiated_connection
// value (possibly empty, on an initial handshake).
func parseRenegotiationInfoExtension(extData cryptobyte.String) ([]byte, error) {
	var info cryptobyte.String
	if !extData.ReadUint8LengthPrefixed(&info) || !extData.Empty() {
		return nil, fmt.Errorf("tls: malformed renegotiation_info extension")
	}
	return append([]byte(nil), info...), nil
}

// addRenegotiationInfoExtension encodes RFC 5746 §3.2's renegotiation_info
// extension body, the mirror of parseRenegotiationInfoExtension.
func addRenegotiationInfoExtension(b *cryptobyte.Builder, renegotiatedConnection []byte) {
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(renegotiatedConnection)
	})
}
