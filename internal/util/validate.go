package util

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateAPIURL checks that raw is an absolute http(s) URL with a host.
// Query strings and fragments are rejected because request paths are
// appended to the URL as-is.
func ValidateAPIURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("API URL must not be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("API URL %q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL %q has no host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("API URL %q must not contain a query or fragment", raw)
	}
	return nil
}
