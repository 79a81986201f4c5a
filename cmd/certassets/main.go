package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/docopt/docopt-go"
	"github.com/forestrie/go-certassets/anchor"
	"github.com/forestrie/go-certassets/assets"
	"github.com/forestrie/go-certassets/server"
	"github.com/prometheus/client_golang/prometheus"
)

const usage = `certassets serves a frontend bundle with certified responses.

Usage:
  certassets serve [options] [--domain=<name>]... [--owned-domain=<name=owner>]...
  certassets roothash [options] [--domain=<name>]... [--owned-domain=<name=owner>]...
  certassets -h | --help

Options:
  -h --help                      Show this screen.
  --listen=<addr>                Asset listen address [default: :8080].
  --metrics-listen=<addr>        Metrics listen address [default: :9090].
  --bundle=<dir>                 Directory holding the frontend bundle.
  --domain=<name>                Platform owned domain, may be repeated.
  --owned-domain=<name=owner>    Domain with an owner, may be repeated.
  --service-id=<id>              Host label used for the alternative origins.
  --key=<pem>                    PEM EC private key, a fresh key when omitted.
  --issuer=<name>                Certificate issuer [default: certassets].
  --azurite-container=<name>     Keep certificates in this emulator container.
  --total-supply=<units>         Publish the token supply metrics.
  --maximum-supply=<units>       Maximum supply reported with the total.
  --log-level=<level>            Log level [default: INFO].

Empty options are read from CERTASSETS_<OPTION> in the environment, for
example CERTASSETS_DOMAIN=a.example,b.example or
CERTASSETS_OWNED_DOMAIN=c.example=alice.
`

func main() {
	os.Exit(run())
}

func run() int {
	parser := &docopt.Parser{OptionsFirst: false}
	o, err := parser.ParseArgs(usage, os.Args[1:], "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	var opts Opts
	if err = o.Bind(&opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts.applyEnv()

	logger.New(opts.LogLevel)
	defer logger.OnExit()
	log := logger.Sugar.WithServiceName("certassets")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.Serve:
		err = serve(ctx, log, opts)
	case opts.Roothash:
		err = roothash(ctx, log, opts)
	}
	if err != nil {
		log.Infof("certassets: %v", err)
		return 1
	}
	return 0
}

// load builds the service and registers the bundle.
func load(ctx context.Context, log logger.Logger, opts Opts) (*assets.Service, *anchor.SigningAnchor, error) {
	cfg, err := opts.assetsConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.Bundle == "" {
		return nil, nil, errors.New("a bundle directory is required")
	}
	resources, err := assets.ResourcesFromFS(os.DirFS(opts.Bundle))
	if err != nil {
		return nil, nil, err
	}

	key, err := signingKey(log, opts.KeyFile)
	if err != nil {
		return nil, nil, err
	}
	signer, err := anchor.NewKeySigner(key, "")
	if err != nil {
		return nil, nil, err
	}

	var anchorOpts []anchor.Option
	if opts.AzuriteContainer != "" {
		store, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), opts.AzuriteContainer)
		if err != nil {
			return nil, nil, err
		}
		anchorOpts = append(anchorOpts, anchor.WithCertificateStore(store))
	}
	a, err := anchor.NewSigningAnchor(log, signer, opts.Issuer, "assets", anchorOpts...)
	if err != nil {
		return nil, nil, err
	}

	domains, err := opts.domains()
	if err != nil {
		return nil, nil, err
	}
	svc := assets.NewService(log, a, assets.WithConfig(cfg))
	if err = svc.Load(ctx, resources, domains); err != nil {
		return nil, nil, err
	}

	if opts.TotalSupply != "" {
		total, err := strconv.ParseUint(opts.TotalSupply, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("--total-supply: %w", err)
		}
		if err = svc.ExportTokenSupply(ctx, total); err != nil {
			return nil, nil, err
		}
	}
	return svc, a, nil
}

func roothash(ctx context.Context, log logger.Logger, opts Opts) error {
	svc, _, err := load(ctx, log, opts)
	if err != nil {
		return err
	}
	root := svc.RootHash()
	fmt.Println(hex.EncodeToString(root[:]))
	return nil
}

func serve(ctx context.Context, log logger.Logger, opts Opts) error {
	svc, a, err := load(ctx, log, opts)
	if err != nil {
		return err
	}
	root := svc.RootHash()
	log.Infof("serving %d assets, digest %x, certificate #%d", len(svc.Paths()), root, a.Sequence())

	reg := prometheus.NewRegistry()
	metrics := server.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", server.MetricsHandler(reg))

	servers := []*http.Server{
		{Addr: opts.Listen, Handler: server.NewHandler(log, svc, metrics), ReadHeaderTimeout: 10 * time.Second},
		{Addr: opts.MetricsListen, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
	}
	errs := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			log.Infof("listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		_ = srv.Shutdown(shutdownCtx)
	}
	return err
}

func signingKey(log logger.Logger, keyFile string) (*ecdsa.PrivateKey, error) {
	if keyFile == "" {
		log.Infof("no signing key configured, certificates are signed with an ephemeral key")
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s: no PEM block", keyFile)
	}
	return x509.ParseECPrivateKey(block.Bytes)
}
