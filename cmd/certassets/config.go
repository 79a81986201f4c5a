package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/forestrie/go-certassets/assets"
)

const envPrefix = "CERTASSETS_"

// Opts is bound from the command line by docopt
type Opts struct {
	Serve    bool
	Roothash bool

	Listen           string   `docopt:"--listen"`
	MetricsListen    string   `docopt:"--metrics-listen"`
	Bundle           string   `docopt:"--bundle"`
	Domains          []string `docopt:"--domain"`
	OwnedDomains     []string `docopt:"--owned-domain"`
	ServiceID        string   `docopt:"--service-id"`
	KeyFile          string   `docopt:"--key"`
	Issuer           string   `docopt:"--issuer"`
	AzuriteContainer string   `docopt:"--azurite-container"`
	TotalSupply      string   `docopt:"--total-supply"`
	MaximumSupply    string   `docopt:"--maximum-supply"`
	LogLevel         string   `docopt:"--log-level"`
}

// applyEnv fills options left empty on the command line from the
// environment. CERTASSETS_DOMAIN may hold several comma separated names.
func (o *Opts) applyEnv() {
	fromEnv := func(dst *string, name string) {
		if *dst == "" {
			*dst = os.Getenv(envPrefix + name)
		}
	}
	fromEnv(&o.Bundle, "BUNDLE")
	fromEnv(&o.ServiceID, "SERVICE_ID")
	fromEnv(&o.KeyFile, "KEY")
	fromEnv(&o.AzuriteContainer, "AZURITE_CONTAINER")
	fromEnv(&o.TotalSupply, "TOTAL_SUPPLY")
	fromEnv(&o.MaximumSupply, "MAXIMUM_SUPPLY")

	if len(o.Domains) == 0 {
		o.Domains = envList("DOMAIN")
	}
	if len(o.OwnedDomains) == 0 {
		o.OwnedDomains = envList("OWNED_DOMAIN")
	}
}

func envList(name string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(envPrefix+name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (o *Opts) assetsConfig() (assets.Config, error) {
	cfg := assets.DefaultConfig()
	cfg.ServiceID = o.ServiceID
	if o.MaximumSupply != "" {
		v, err := strconv.ParseUint(o.MaximumSupply, 10, 64)
		if err != nil {
			return assets.Config{}, fmt.Errorf("--maximum-supply: %w", err)
		}
		cfg.MaximumSupply = v
	}
	return cfg, nil
}

// domains combines the platform domains with the owned ones, each given
// as name=owner.
func (o *Opts) domains() (assets.Domains, error) {
	d := assets.Domains{}
	for _, name := range o.Domains {
		d[name] = assets.DomainConfig{}
	}
	for _, spec := range o.OwnedDomains {
		name, owner, ok := strings.Cut(spec, "=")
		if !ok || name == "" || owner == "" {
			return nil, fmt.Errorf("--owned-domain %q: want <name>=<owner>", spec)
		}
		if _, dup := d[name]; dup {
			return nil, fmt.Errorf("--owned-domain %q: %s is already configured", spec, name)
		}
		d[name] = assets.DomainConfig{Owner: owner}
	}
	return d, nil
}
