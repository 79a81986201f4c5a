package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	AlternativeOriginsPath = "/.well-known/ii-alternative-origins"
	DomainsPath            = "/.well-known/ic-domains"
	MetricsPathPrefix      = "/api/v1/"

	TotalSupplyMetric   = "total_supply"
	MaximumSupplyMetric = "maximum_supply"
)

// Load registers the bundle, the alternative origins and the domain list,
// then publishes once.
//
// domains must include a platform owned domain, it is the domain the entry
// page is rewritten for. Without one Load fails before anything is staged.
func (s *Service) Load(ctx context.Context, resources []Resource, domains Domains) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return ErrAlreadyLoaded
	}
	platform, err := domains.PlatformDomain()
	if err != nil {
		return err
	}

	s.addBundle(platform, resources)
	if err = s.addAlternativeOrigins(); err != nil {
		s.registrar.Discard()
		return err
	}
	s.addDomains(domains)

	if err = s.registrar.Finalize(ctx); err != nil {
		return err
	}
	s.loaded = true
	s.log.Infof("loaded %d bundle files for %s", len(resources), platform)
	return nil
}

// AddDomains replaces the published domain list.
func (s *Service) AddDomains(ctx context.Context, domains Domains) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addDomains(domains)
	return s.registrar.Finalize(ctx)
}

// UpdateMetric publishes value, in whole tokens, at /api/v1/<name>.
func (s *Service) UpdateMetric(ctx context.Context, name string, value uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addMetric(name, value)
	return s.registrar.Finalize(ctx)
}

// ExportTokenSupply publishes the total supply together with the configured
// maximum supply.
func (s *Service) ExportTokenSupply(ctx context.Context, totalSupply uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addMetric(TotalSupplyMetric, totalSupply)
	s.addMetric(MaximumSupplyMetric, s.cfg.MaximumSupply)
	return s.registrar.Finalize(ctx)
}

func (s *Service) addBundle(platformDomain string, resources []Resource) {
	for _, res := range resources {
		if res.Path == s.cfg.EntryPage {
			s.registrar.Add(
				[]string{"/", "/" + res.Path},
				EntryPageHeaders(),
				s.transform(platformDomain, res.Body),
			)
			continue
		}
		s.registrar.Add([]string{"/" + res.Path}, HeadersFor(res.Path), res.Body)
	}
}

type alternativeOrigins struct {
	AlternativeOrigins []string `json:"alternativeOrigins"`
}

func (s *Service) addAlternativeOrigins() error {
	origins := alternativeOrigins{AlternativeOrigins: []string{}}
	for _, suffix := range s.cfg.OriginSuffixes {
		origins.AlternativeOrigins = append(origins.AlternativeOrigins,
			fmt.Sprintf("https://%s.%s", s.cfg.ServiceID, suffix))
	}
	body, err := json.Marshal(origins)
	if err != nil {
		return err
	}
	s.registrar.Add([]string{AlternativeOriginsPath}, contentType(mimeJSON), body)
	return nil
}

func (s *Service) addDomains(domains Domains) {
	s.registrar.Add([]string{DomainsPath}, nil, domains.wellKnown())
}

func (s *Service) addMetric(name string, value uint64) {
	s.registrar.Add(
		[]string{MetricsPathPrefix + name},
		contentType(mimeJSON),
		[]byte(FormatTokens(value, s.cfg.TokenBase)),
	)
}

// FormatTokens renders value/base with the fewest digits that round trip,
// 1000000/100 is "10000" and 1050/100 is "10.5". A zero base is taken as 1.
func FormatTokens(value, base uint64) string {
	if base == 0 {
		base = 1
	}
	return strconv.FormatFloat(float64(value)/float64(base), 'f', -1, 64)
}
