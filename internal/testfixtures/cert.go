// Package testfixtures builds the server identity test fixtures
// (self-signed RSA certificate and matching key) the handshake/kex/wiretest
// test suites need, following the same x509.CreateCertificate pattern the
// teacher uses for its own synthetic test certificates
// (u_fingerprint_server.go's self-signed helper).
package testfixtures

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"
)

// ServerIdentity is a freshly generated RSA key and a self-signed
// certificate for it, DER-encoded the way handshake.CertificateAndKey
// expects its chain.
type ServerIdentity struct {
	Chain      [][]byte
	PrivateKey *rsa.PrivateKey
	Leaf       *x509.Certificate
}

// GenerateServerIdentity creates a 2048-bit RSA key and a self-signed
// leaf certificate for dnsName, valid for one day from now.
func GenerateServerIdentity(dnsName string) (*ServerIdentity, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: dnsName},
		NotBefore:             now,
		NotAfter:              now.Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{dnsName},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	if err != nil {
		return nil, err
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}

	return &ServerIdentity{Chain: [][]byte{der}, PrivateKey: priv, Leaf: leaf}, nil
}
