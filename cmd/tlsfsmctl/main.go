// Command tlsfsmctl loads a handshake policy file and drives the state
// machine through one handshake against an in-memory synthetic client,
// printing the negotiated version and cipher suite and both Finished
// verify_data values. It exercises the handshake package
// the way an operator would while authoring or debugging a policy file,
// without needing a real socket or peer.
package main

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mattgray/go-tls-handshake/internal/suites"
	"github.com/mattgray/go-tls-handshake/internal/wire"
	"github.com/mattgray/go-tls-handshake/internal/wiretest"
	"github.com/mattgray/go-tls-handshake/trace"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := &cli.App{
		Name:  "tlsfsmctl",
		Usage: "drive the TLS handshake state machine against a synthetic client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "policy",
				Aliases:  []string{"p"},
				Usage:    "path to a handshake policy YAML file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "protocol version the synthetic client offers (tls1.0, tls1.1, tls1.2)",
				Value: "tls1.2",
			},
			&cli.StringFlag{
				Name:  "cipher",
				Usage: "cipher suite name the synthetic client offers",
				Value: "TLS_DHE_RSA_WITH_AES_128_CBC_SHA256",
			},
			&cli.GenericFlag{
				Name:  "log-level",
				Usage: "set the log level",
				Value: fromLogLevel(slog.LevelInfo),
			},
		},
		Before: func(c *cli.Context) error {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: (*slog.Level)(c.Generic("log-level").(*logLevelFlag)),
			}))
			return nil
		},
		Action: func(c *cli.Context) error {
			return run(logger, c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("tlsfsmctl failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, c *cli.Context) error {
	p, err := loadPolicy(c.String("policy"))
	if err != nil {
		return fmt.Errorf("loading policy: %w", err)
	}

	cfg, err := p.toConfig()
	if err != nil {
		return fmt.Errorf("building config: %w", err)
	}
	cfg.Hooks = trace.NewSlogHook(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	ver, ok := versionByName[c.String("version")]
	if !ok {
		return fmt.Errorf("unknown --version %q", c.String("version"))
	}
	suite := suiteByName(c.String("cipher"))
	if suite == nil {
		return fmt.Errorf("unknown --cipher %q", c.String("cipher"))
	}

	hello := wiretest.Hello{
		Version:             ver,
		CipherSuites:        []uint16{suite.ID},
		SignatureAlgorithms: []wire.SigAndHash{{Hash: wire.HashSHA256, Sig: wire.SignatureRSA}},
		RenegotiationInfo:   []byte{},
	}

	result, err := wiretest.Run(rand.Reader, cfg, hello)
	if err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}

	logger.Info("handshake complete",
		"version", result.Version.String(),
		"cipher_suite", result.Suite.Name,
		"key_exchange", keyExchangeName(result.Suite),
		"master_secret_len", len(result.MasterSecret),
	)
	fmt.Printf("version=%s suite=%s client_verify_data=%x server_verify_data=%x\n",
		result.Version, result.Suite.Name, result.ClientVerifyData, result.ServerVerifyData)
	return nil
}

func keyExchangeName(s *suites.CipherSuite) string {
	switch s.KeyExchange {
	case suites.KeyExchangeRSA:
		return "RSA"
	default:
		return "DHE_RSA"
	}
}

type logLevelFlag slog.Level

func fromLogLevel(l slog.Level) *logLevelFlag {
	f := logLevelFlag(l)
	return &f
}

func (f *logLevelFlag) Set(value string) error {
	return (*slog.Level)(f).UnmarshalText([]byte(value))
}

func (f *logLevelFlag) String() string {
	return (*slog.Level)(f).String()
}
