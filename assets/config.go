package assets

// Config for the synthesized assets and the bundle layout.
type Config struct {
	// ServiceID is the host label the alternative origins are built from.
	ServiceID string
	// OriginSuffixes are the parent domains ServiceID is reachable under.
	OriginSuffixes []string

	// EntryPage is the bundle path served at "/" after Transform.
	EntryPage string

	// TokenBase is the number of base units per whole token. Metric values
	// are published divided by it.
	TokenBase     uint64
	MaximumSupply uint64
}

func DefaultConfig() Config {
	return Config{
		OriginSuffixes: []string{"ic0.app", "icp0.io"},
		EntryPage:      "index.html",
		TokenBase:      100,
	}
}
