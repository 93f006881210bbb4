package main

import (
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mattgray/go-tls-handshake/handshake"
	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/testfixtures"
	"github.com/mattgray/go-tls-handshake/internal/wire"
)

// policy is the on-disk YAML shape of a server's handshake configuration --
// the same fields handshake.Config exposes, named the way an operator would
// write them rather than the way Go spells them.
type policy struct {
	ProtocolVersions    []string `yaml:"protocol_versions"`
	Ciphers             []string `yaml:"ciphers"`
	Hashes              []string `yaml:"hashes"`
	SecureRenegotiation bool     `yaml:"secure_renegotiation"`
	UseRenegotiation    bool     `yaml:"use_renegotiation"`

	// CertFile/KeyFile name a PEM certificate and RSA key on disk. If both
	// are empty, a throwaway self-signed identity is generated instead, for
	// quick smoke-testing a policy file without provisioning real key
	// material.
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
	DNSName  string `yaml:"dns_name"`
}

func loadPolicy(path string) (*policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	var p policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}
	return &p, nil
}

var versionByName = map[string]wire.Version{
	"tls1.0": wire.VersionTLS10,
	"tls1.1": wire.VersionTLS11,
	"tls1.2": wire.VersionTLS12,
}

var hashByName = map[string]crypto.Hash{
	"sha1":   crypto.SHA1,
	"sha224": crypto.SHA224,
	"sha256": crypto.SHA256,
	"sha384": crypto.SHA384,
	"sha512": crypto.SHA512,
}

func (p *policy) toConfig() (*handshake.Config, error) {
	cfg := &handshake.Config{
		SecureRenegotiation: p.SecureRenegotiation,
		UseRenegotiation:    p.UseRenegotiation,
	}

	for _, v := range p.ProtocolVersions {
		ver, ok := versionByName[v]
		if !ok {
			return nil, fmt.Errorf("unknown protocol version %q", v)
		}
		cfg.ProtocolVersions = append(cfg.ProtocolVersions, ver)
	}

	if len(p.Ciphers) == 0 {
		cfg.Ciphers = suites.All
	} else {
		for _, name := range p.Ciphers {
			s := suiteByName(name)
			if s == nil {
				return nil, fmt.Errorf("unknown cipher suite %q", name)
			}
			cfg.Ciphers = append(cfg.Ciphers, s)
		}
	}

	for _, h := range p.Hashes {
		ch, ok := hashByName[h]
		if !ok {
			return nil, fmt.Errorf("unknown signature hash %q", h)
		}
		cfg.Hashes = append(cfg.Hashes, ch)
	}
	if len(cfg.Hashes) == 0 {
		cfg.Hashes = []crypto.Hash{crypto.SHA256, crypto.SHA1}
	}

	identity, err := p.identity()
	if err != nil {
		return nil, err
	}
	cfg.Certificate = identity

	return cfg, nil
}

func suiteByName(name string) *suites.CipherSuite {
	for _, s := range suites.All {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (p *policy) identity() (*handshake.CertificateAndKey, error) {
	if p.CertFile == "" && p.KeyFile == "" {
		dnsName := p.DNSName
		if dnsName == "" {
			dnsName = "tlsfsmctl.test"
		}
		id, err := testfixtures.GenerateServerIdentity(dnsName)
		if err != nil {
			return nil, fmt.Errorf("generating throwaway identity: %w", err)
		}
		return &handshake.CertificateAndKey{Chain: id.Chain, PrivateKey: id.PrivateKey}, nil
	}

	certPEM, err := os.ReadFile(p.CertFile)
	if err != nil {
		return nil, fmt.Errorf("reading cert_file: %w", err)
	}
	keyPEM, err := os.ReadFile(p.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading key_file: %w", err)
	}
	return decodeIdentity(certPEM, keyPEM)
}

func decodeIdentity(certPEM, keyPEM []byte) (*handshake.CertificateAndKey, error) {
	chain, err := decodeCertChain(certPEM)
	if err != nil {
		return nil, err
	}
	key, err := decodeRSAKey(keyPEM)
	if err != nil {
		return nil, err
	}
	return &handshake.CertificateAndKey{Chain: chain, PrivateKey: key}, nil
}

// decodeCertChain and decodeRSAKey are intentionally narrow: this tool only
// ever needs to load an RSA leaf certificate and key from disk, never to
// validate a chain or handle other key types (that belongs to whatever
// provisions the real server's identity).
func decodeCertChain(pemBytes []byte) ([][]byte, error) {
	var chain [][]byte
	rest := pemBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			chain = append(chain, block.Bytes)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no CERTIFICATE blocks found")
	}
	if _, err := x509.ParseCertificate(chain[0]); err != nil {
		return nil, fmt.Errorf("parsing leaf certificate: %w", err)
	}
	return chain, nil
}

func decodeRSAKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in key_file")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	key, ok := keyAny.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key_file does not contain an RSA private key")
	}
	return key, nil
}
