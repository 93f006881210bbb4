package wire

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// Per RFC 1035 §2.3.1 / RFC 1123, as enforced on the accepting (server) side
// of RFC 6066's SNI extension.
const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// HostnameError describes why a ClientHello's host_name extension value was
// rejected.
type HostnameError struct {
	Hostname string
	Reason   string
}

func (e *HostnameError) Error() string {
	return fmt.Sprintf("tls: invalid SNI hostname %q: %s", e.Hostname, e.Reason)
}

// ValidateHostname checks a ClientHello's SNI host_name value for RFC 6066 /
// RFC 1035 well-formedness before it is recorded as the epoch's server_name.
// IP-literal host_name values are rejected outright (RFC 6066 §3 restricts
// this extension to DNS-form hostnames); Unicode labels are normalized to
// A-labels via golang.org/x/net/idna before length checks are applied.
func ValidateHostname(hostname string) (string, error) {
	if hostname == "" {
		return "", &HostnameError{hostname, "hostname is empty"}
	}
	hostname = strings.TrimSuffix(hostname, ".")
	if net.ParseIP(hostname) != nil {
		return "", &HostnameError{hostname, "IP literals are not valid SNI hostnames"}
	}

	ascii, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		return "", &HostnameError{hostname, "not a valid IDNA hostname: " + err.Error()}
	}

	if len(ascii) > maxHostnameLength {
		return "", &HostnameError{hostname, fmt.Sprintf("exceeds %d characters", maxHostnameLength)}
	}
	for _, label := range strings.Split(ascii, ".") {
		if len(label) == 0 {
			return "", &HostnameError{hostname, "empty label (consecutive dots)"}
		}
		if len(label) > maxLabelLength {
			return "", &HostnameError{hostname, fmt.Sprintf("label %q exceeds %d characters", label, maxLabelLength)}
		}
	}
	return ascii, nil
}
