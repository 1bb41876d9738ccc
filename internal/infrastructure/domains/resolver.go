// Package domains resolves URLs to their registrable base domain, which
// serves as the publisher identity key.
package domains

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"NewsTrust/internal/ports"
)

// Resolver derives eTLD+1 values from the embedded public suffix list.
// Deterministic for a given list snapshot.
type Resolver struct{}

var _ ports.DomainResolver = (*Resolver)(nil)

// New returns a stateless resolver.
func New() *Resolver {
	return &Resolver{}
}

// BaseDomain returns the registrable domain of the URL, e.g. "lemonde.fr"
// for "https://www.lemonde.fr/articles/1".
func (r *Resolver) BaseDomain(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("base domain of %q: %w", host, err)
	}
	return base, nil
}
