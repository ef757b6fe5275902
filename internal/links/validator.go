package links

import (
	"fmt"
	"net/url"
	"strings"
)

// allowedDomains is the fixed allow-list of trusted medical domains.
// The sources registry builds its URLs against the same list; the two act
// as independent defense layers.
var allowedDomains = []string{
	"kdca.go.kr",
	"health.kdca.go.kr",
	"nip.kdca.go.kr",
	"mfds.go.kr",
	"nedrug.mfds.go.kr",
	"e-gen.or.kr",
	"ncmh.go.kr",
	"kfsp.or.kr",
	"129.go.kr",
	"who.int",
	"cdc.gov",
	"medlineplus.gov",
	"pubmed.ncbi.nlm.nih.gov",
	"pmc.ncbi.nlm.nih.gov",
	"cochranelibrary.com",
	"nice.org.uk",
	"vsearch.nlm.nih.gov",
	"google.com",
}

// blockedParams are tracking query parameters that must never reach the user.
var blockedParams = []string{"utm_source", "utm_medium", "utm_campaign"}

// IsValid reports whether raw is an HTTPS URL on an allow-listed domain
// carrying no tracking parameters.
func IsValid(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "https" {
		return false
	}
	if !hostAllowed(u.Hostname()) {
		return false
	}
	q := u.Query()
	for _, p := range blockedParams {
		if q.Has(p) {
			return false
		}
	}
	return true
}

// Filter returns only the URLs that pass IsValid. It never fails: a single
// bad link must not blank a user-facing response.
func Filter(urls []string) []string {
	valid := make([]string, 0, len(urls))
	for _, raw := range urls {
		if IsValid(raw) {
			valid = append(valid, raw)
		}
	}
	return valid
}

// Validate checks every URL and returns a descriptive error for the first
// violation. Strict variant for internal consistency checks; never run it on
// live user input.
func Validate(urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("url list is empty")
	}

	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid url format: %s", raw)
		}
		if u.Scheme != "https" {
			return fmt.Errorf("non-https url blocked: %s", raw)
		}
		if !hostAllowed(u.Hostname()) {
			return fmt.Errorf("domain not allowed: %s", stripWWW(u.Hostname()))
		}
		q := u.Query()
		for _, p := range blockedParams {
			if q.Has(p) {
				return fmt.Errorf("tracking parameter blocked: %s", raw)
			}
		}
	}
	return nil
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// hostAllowed matches the hostname (with a leading www. stripped) against
// the allow-list, exactly or as a subdomain. "evilkdca.go.kr" must not match
// "kdca.go.kr".
func hostAllowed(host string) bool {
	h := stripWWW(host)
	for _, domain := range allowedDomains {
		if h == domain || strings.HasSuffix(h, "."+domain) {
			return true
		}
	}
	return false
}
