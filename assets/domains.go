package assets

import (
	"sort"
	"strings"
)

// DomainConfig describes one domain the service answers on. A domain without
// an owner belongs to the platform.
type DomainConfig struct {
	Owner string
}

func (c DomainConfig) PlatformOwned() bool {
	return c.Owner == ""
}

type Domains map[string]DomainConfig

// Names returns the configured domains in sorted order.
func (d Domains) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlatformDomain returns the first platform owned domain in sorted order.
func (d Domains) PlatformDomain() (string, error) {
	for _, name := range d.Names() {
		if d[name].PlatformOwned() {
			return name, nil
		}
	}
	return "", ErrNoPlatformDomain
}

func (d Domains) wellKnown() []byte {
	return []byte(strings.Join(d.Names(), "\n"))
}
