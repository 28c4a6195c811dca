package model

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Source is the origin of a claim, such as a report URL or an agency name.
type Source struct {
	// Location identifies the source. It is usually a URL but any text is
	// accepted.
	Location string `json:"location" yaml:"location"`

	// Trusted marks the source as accepted without further verification.
	Trusted bool `json:"trusted" yaml:"trusted"`
}

// IsAccurate reports the stored trust flag. Sources are the leaves of the
// model, so there is nothing below them to check.
func (s Source) IsAccurate() bool {
	return s.Trusted
}

// IsAccurateWithSources is not defined for sources. Statistics compare their
// source lists by trust flag instead.
func (s Source) IsAccurateWithSources(_ []Source) (bool, error) {
	return false, ErrNotImplemented
}

// AccuracyScore always returns ErrNotImplemented.
func (s Source) AccuracyScore() (uint32, error) {
	return 0, ErrNotImplemented
}

// Domain returns the registrable domain (eTLD+1) of the location, e.g.
// "bls.gov" for "https://www.bls.gov/cps/". It returns an empty string when
// the location is not a URL or hostname.
func (s Source) Domain() string {
	host := sourceHost(s.Location)
	if host == "" {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}

// sourceHost extracts a lower-cased hostname from a location.
func sourceHost(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}

	var host string
	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil {
			return ""
		}
		host = u.Hostname()
	} else {
		host, _, _ = strings.Cut(location, "/")
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
	}

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || strings.ContainsAny(host, " \t") || !strings.Contains(host, ".") {
		return ""
	}
	if net.ParseIP(host) != nil {
		return ""
	}
	return host
}
