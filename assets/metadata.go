package assets

import (
	"bytes"
	"fmt"
	"html"
)

// Transform rewrites the entry page for the platform domain before it is
// hashed. It must be deterministic.
type Transform func(domain string, page []byte) []byte

// InjectDomainMetadata adds canonical link and og:url elements for domain
// immediately before the first </head>. Pages without a head are returned
// unchanged.
func InjectDomainMetadata(domain string, page []byte) []byte {
	closing := []byte("</head>")
	i := bytes.Index(page, closing)
	if i < 0 {
		return bytes.Clone(page)
	}

	url := html.EscapeString(fmt.Sprintf("https://%s/", domain))
	meta := fmt.Sprintf(
		`<link rel="canonical" href="%s"><meta property="og:url" content="%s">`, url, url)

	out := make([]byte, 0, len(page)+len(meta))
	out = append(out, page[:i]...)
	out = append(out, meta...)
	return append(out, page[i:]...)
}
